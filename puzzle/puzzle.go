// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package puzzle

import (
	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/mixdigest"
)

// difficulty limits, the number of leading zero bits a digest needs
const (
	MinimumDifficulty = 1
	MaximumDifficulty = 64
)

// Puzzle - one search problem
//
// a value object: two puzzles are the same puzzle iff data and
// difficulty are both equal, so plain == comparison is the equality
type Puzzle struct {
	Data       string `json:"data"`
	Difficulty uint64 `json:"difficulty"`
}

// Solution - a claimed answer to a puzzle
//
// carries its puzzle so a late answer can be matched against the
// round it belongs to
type Solution struct {
	Puzzle Puzzle `json:"puzzle"`
	Nonce  uint64 `json:"nonce"`
}

// Validate - range check the difficulty
func (p Puzzle) Validate() error {
	if p.Difficulty < MinimumDifficulty || p.Difficulty > MaximumDifficulty {
		return fault.DifficultyOutOfRange
	}
	return nil
}

// Target - the threshold a digest must be strictly below
//
// difficulty 1 → 2^63 … difficulty 64 → 1
func (p Puzzle) Target() uint64 {
	return 1 << (64 - p.Difficulty)
}

// MeetsTarget - check one candidate nonce against the puzzle
func (p Puzzle) MeetsTarget(nonce uint64) bool {
	return mixdigest.Digest(p.Data, nonce) < p.Target()
}

// Verify - recompute the digest from the claimed pair and compare
// against the target
//
// uses the identical two lane digest the solvers use and trusts no
// solver supplied intermediate value
func (s Solution) Verify() bool {
	if nil != s.Puzzle.Validate() {
		return false
	}
	return s.Puzzle.MeetsTarget(s.Nonce)
}
