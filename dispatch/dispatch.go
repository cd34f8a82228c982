// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/puzzle"
	"github.com/tessera-net/tesserad/util"
)

// limits when not configured
const (
	DefaultSlots   = 8
	DefaultTimeout = 65 * time.Second
)

// Job - one puzzle assignment for one worker
type Job struct {
	Worker  uint32           // registry uid
	Address *util.Connection // worker listen address
	Key     []byte           // worker transport public key
	Puzzle  puzzle.Puzzle    // the assignment
}

// Response - a worker's accepted reply to its assignment
type Response struct {
	Worker   uint32
	Solution puzzle.Solution
	Elapsed  time.Duration
}

// Invoker - deliver one assignment and wait for the reply
//
// implementations own their transport and its timeouts; the engine
// applies its own per call limit on top, so a stalled invoker only
// costs its slot for the limit, never the whole round
type Invoker interface {
	Invoke(job Job) (puzzle.Solution, error)
}

// Engine - bounded fan out of puzzle assignments
type Engine struct {
	invoker Invoker
	slots   int
	timeout time.Duration
	log     *logger.L
}

// NewEngine - create an engine with its own logging channel
//
// zero values select the defaults above
func NewEngine(invoker Invoker, slots int, timeout time.Duration) *Engine {
	if slots <= 0 {
		slots = DefaultSlots
	}
	if 0 == timeout {
		timeout = DefaultTimeout
	}
	return &Engine{
		invoker: invoker,
		slots:   slots,
		timeout: timeout,
		log:     logger.New("dispatch"),
	}
}

// Dispatch - deliver every assignment and merge the accepted replies
//
// at most slots calls are in flight at once.  a worker that times
// out, faults, or answers for the wrong puzzle simply has no entry
// in the result; other workers are unaffected.  the result order is
// arbitrary.
func (engine *Engine) Dispatch(jobs []Job) []Response {

	jobChannel := make(chan Job)
	resultChannel := make(chan Response, len(jobs))

	var wg sync.WaitGroup
	for slot := 0; slot < engine.slots; slot += 1 {
		wg.Add(1)
		go engine.runSlot(slot, jobChannel, resultChannel, &wg)
	}

	for _, job := range jobs {
		jobChannel <- job
	}
	close(jobChannel)
	wg.Wait()
	close(resultChannel)

	responses := make([]Response, 0, len(jobs))
	for response := range resultChannel {
		responses = append(responses, response)
	}
	return responses
}

func (engine *Engine) runSlot(slot int, jobs <-chan Job, results chan<- Response, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		start := time.Now()
		solution, err := engine.call(job)
		elapsed := time.Since(start)

		if nil != err {
			engine.log.Warnf("slot: %d  worker: %d  elapsed: %s  error: %s", slot, job.Worker, elapsed, err)
			continue
		}
		if job.Puzzle != solution.Puzzle {
			engine.log.Warnf("slot: %d  worker: %d  error: %s", slot, job.Worker, fault.PuzzleMismatch)
			continue
		}

		engine.log.Debugf("slot: %d  worker: %d  nonce: %d  elapsed: %s", slot, job.Worker, solution.Nonce, elapsed)
		results <- Response{
			Worker:   job.Worker,
			Solution: solution,
			Elapsed:  elapsed,
		}
	}
}

type callResult struct {
	solution puzzle.Solution
	err      error
}

// run one invocation under the engine's own deadline
//
// a timed out call abandons its invoker goroutine; the transport's
// socket timeout cleans it up later
func (engine *Engine) call(job Job) (puzzle.Solution, error) {

	done := make(chan callResult, 1)
	go func() {
		solution, err := engine.invoker.Invoke(job)
		done <- callResult{solution: solution, err: err}
	}()

	timer := time.NewTimer(engine.timeout)
	defer timer.Stop()

	select {
	case result := <-done:
		return result.solution, result.err
	case <-timer.C:
		return puzzle.Solution{}, fault.InvokeTimeout
	}
}
