// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package puzzle_test

import (
	"testing"

	"github.com/tessera-net/tesserad/puzzle"
)

// puzzles are value objects compared with ==
func TestEquality(t *testing.T) {

	testData := []struct {
		a     puzzle.Puzzle
		b     puzzle.Puzzle
		equal bool
	}{
		{puzzle.Puzzle{Data: "x", Difficulty: 4}, puzzle.Puzzle{Data: "x", Difficulty: 4}, true},
		{puzzle.Puzzle{Data: "x", Difficulty: 4}, puzzle.Puzzle{Data: "y", Difficulty: 4}, false},
		{puzzle.Puzzle{Data: "x", Difficulty: 4}, puzzle.Puzzle{Data: "x", Difficulty: 5}, false},
		{puzzle.Puzzle{Data: "", Difficulty: 1}, puzzle.Puzzle{Data: "", Difficulty: 1}, true},
	}

	for i, d := range testData {
		if (d.a == d.b) != d.equal {
			t.Errorf("%d: equality of %v and %v: expected %v", i, d.a, d.b, d.equal)
		}
	}
}

// target halves for every extra difficulty bit
func TestTarget(t *testing.T) {

	testData := []struct {
		difficulty uint64
		target     uint64
	}{
		{1, 0x8000000000000000},
		{2, 0x4000000000000000},
		{16, 0x0001000000000000},
		{48, 0x0000000000010000},
		{63, 2},
		{64, 1},
	}

	for i, d := range testData {
		p := puzzle.Puzzle{Data: "irrelevant", Difficulty: d.difficulty}
		if target := p.Target(); target != d.target {
			t.Errorf("%d: target(%d) = %016x  expected: %016x", i, d.difficulty, target, d.target)
		}
	}
}

func TestValidate(t *testing.T) {

	for _, difficulty := range []uint64{1, 2, 33, 64} {
		p := puzzle.Puzzle{Data: "d", Difficulty: difficulty}
		if err := p.Validate(); nil != err {
			t.Errorf("difficulty %d rejected: %s", difficulty, err)
		}
	}
	for _, difficulty := range []uint64{0, 65, 1000} {
		p := puzzle.Puzzle{Data: "d", Difficulty: difficulty}
		if err := p.Validate(); nil == err {
			t.Errorf("difficulty %d accepted", difficulty)
		}
	}
}

// the first satisfying nonce verifies, every earlier nonce cannot
func TestVerify(t *testing.T) {

	p := puzzle.Puzzle{Data: "verify me", Difficulty: 4}

	nonce := uint64(0)
	limit := uint64(1) << 20
	for !p.MeetsTarget(nonce) {
		nonce += 1
		if nonce > limit {
			t.Fatalf("no solution found below %d", limit)
		}
	}

	s := puzzle.Solution{Puzzle: p, Nonce: nonce}
	if !s.Verify() {
		t.Fatalf("first satisfying nonce %d failed to verify", nonce)
	}

	// nonce is the smallest satisfying value, so all below it must fail
	for earlier := uint64(0); earlier < nonce; earlier += 1 {
		bad := puzzle.Solution{Puzzle: p, Nonce: earlier}
		if bad.Verify() {
			t.Fatalf("nonce %d below the first solution %d verified", earlier, nonce)
		}
	}
}

// out of range difficulty never verifies
func TestVerifyBadDifficulty(t *testing.T) {

	for _, difficulty := range []uint64{0, 65} {
		s := puzzle.Solution{
			Puzzle: puzzle.Puzzle{Data: "d", Difficulty: difficulty},
			Nonce:  1,
		}
		if s.Verify() {
			t.Errorf("difficulty %d verified", difficulty)
		}
	}
}
