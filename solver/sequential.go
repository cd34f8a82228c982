// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/tessera-net/tesserad/counter"
	"github.com/tessera-net/tesserad/mixdigest"
	"github.com/tessera-net/tesserad/puzzle"
)

// Sequential - single threaded ascending nonce scan
//
// always returns the smallest valid nonce, so its output doubles as
// the reference answer when checking the parallel engine.
type Sequential struct {
	Attempts *counter.Counter // optional tally of digests computed
}

// Solve - scan nonces upwards from zero until one meets the target
func (s Sequential) Solve(p puzzle.Puzzle) uint64 {
	target := p.Target()
	for nonce := uint64(0); ; nonce += 1 {
		if mixdigest.Digest(p.Data, nonce) < target {
			if nil != s.Attempts {
				s.Attempts.Add(nonce + 1)
			}
			return nonce
		}
	}
}

// Name - engine name as used in the configuration file
func (s Sequential) Name() string {
	return "sequential"
}
