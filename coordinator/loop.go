// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coordinator

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/mode"
)

// looper - runs rounds on a fixed cadence
type looper struct {
	log      *logger.L
	round    *Round
	interval time.Duration
}

// Run - execute rounds until shutdown
//
// the wait is the interval less the round's own elapsed time, so
// round starts stay on cadence no matter how slow the workers are
func (loop *looper) Run(args interface{}, shutdown <-chan struct{}) {

	log := loop.log
	log.Info("starting…")

loop:
	for {
		if mode.Is(mode.Stopped) {
			break loop
		}

		start := time.Now()
		err := loop.round.Execute()
		if nil != err {
			log.Errorf("round error: %s", err)
		}

		delay := loop.interval - time.Since(start)
		if delay < 0 {
			log.Warnf("round overran its interval by: %s", -delay)
			delay = 0
		}

		select {
		case <-shutdown:
			break loop
		case <-time.After(delay):
		}
	}

	log.Info("shutting down…")
	log.Flush()
}
