// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/tessera-net/tesserad/counter"
	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/puzzle"
)

// Solver - a nonce search engine
//
// Solve blocks until a valid nonce for the puzzle is found, which
// for an impossible difficulty can be forever.  the caller is
// responsible for any deadline handling.
type Solver interface {
	Solve(p puzzle.Puzzle) uint64
	Name() string
}

// New - select a search engine by its configured name
//
// an empty name selects the sequential engine
func New(name string, size uint64, units int, attempts *counter.Counter) (Solver, error) {
	switch name {
	case "", "sequential":
		return Sequential{Attempts: attempts}, nil
	case "batch":
		return Batch{
			Size:     size,
			Units:    units,
			Attempts: attempts,
		}, nil
	default:
		return nil, fault.InvalidSolverName
	}
}
