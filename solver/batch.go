// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solver

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/tessera-net/tesserad/counter"
	"github.com/tessera-net/tesserad/mixdigest"
	"github.com/tessera-net/tesserad/puzzle"
)

// DefaultBatchSize - nonces tested per batch when not configured
const DefaultBatchSize = 1000000

// Batch - data parallel scan over fixed size nonce ranges
//
// each batch covers the range [start, start+Size) and is split
// between the execution units by a stride of Units, so every nonce
// in the batch is tested exactly once.  the first unit to find a
// valid nonce claims the batch; later finds in the same batch are
// discarded.  a claimed batch still runs to completion, which keeps
// the per batch work constant, so the returned nonce is valid but
// not necessarily the smallest one.
type Batch struct {
	Size     uint64           // nonces per batch, 0 → DefaultBatchSize
	Units    int              // parallel execution units, 0 → NumCPU
	Attempts *counter.Counter // optional tally of digests computed
}

// Solve - scan successive batches until one of them is claimed
func (b Batch) Solve(p puzzle.Puzzle) uint64 {

	size := b.Size
	if 0 == size {
		size = DefaultBatchSize
	}
	units := b.Units
	if units <= 0 {
		units = runtime.NumCPU()
	}

	target := p.Target()

	for start := uint64(0); ; start += size {

		// one claim flag and one result slot per batch
		claimed := uint32(0)
		winner := uint64(0)

		var wg sync.WaitGroup
		for unit := 0; unit < units; unit += 1 {
			wg.Add(1)
			go func(offset uint64) {
				defer wg.Done()
				for nonce := start + offset; nonce < start+size; nonce += uint64(units) {
					if mixdigest.Digest(p.Data, nonce) < target {
						if atomic.CompareAndSwapUint32(&claimed, 0, 1) {
							atomic.StoreUint64(&winner, nonce)
						}
					}
				}
			}(uint64(unit))
		}
		wg.Wait()

		if nil != b.Attempts {
			b.Attempts.Add(size)
		}

		if 0 != atomic.LoadUint32(&claimed) {
			return atomic.LoadUint64(&winner)
		}
	}
}

// Name - engine name as used in the configuration file
func (b Batch) Name() string {
	return "batch"
}
