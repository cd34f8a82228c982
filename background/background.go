// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

import (
	"sync"
)

// Process - any type implementing Run can be started as a background
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for later stopping the processes
type T struct {
	sync.WaitGroup
	finalise chan struct{}
}

// Start - start up a set of background processes
// all sharing the same shutdown channel and args value
func Start(processes Processes, args interface{}) *T {

	register := &T{
		finalise: make(chan struct{}),
	}

	// start each background
	for _, p := range processes {
		register.Add(1)
		go func(p Process) {
			defer register.Done()
			p.Run(args, register.finalise)
		}(p)
	}
	return register
}

// Stop - stop all background processes and wait until they have finished
func (t *T) Stop() {

	if nil == t {
		return
	}

	close(t.finalise)
	t.Wait()
}
