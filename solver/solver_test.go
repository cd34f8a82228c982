// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solver_test

import (
	"math/rand"
	"testing"

	"github.com/tessera-net/tesserad/counter"
	"github.com/tessera-net/tesserad/mixdigest"
	"github.com/tessera-net/tesserad/puzzle"
	"github.com/tessera-net/tesserad/solver"
)

// a difficulty of four keeps the expected scan short
var testPuzzle = puzzle.Puzzle{
	Data:       "solver test data",
	Difficulty: 4,
}

func TestSequentialReturnsSmallest(t *testing.T) {
	s := solver.Sequential{}
	nonce := s.Solve(testPuzzle)

	if !testPuzzle.MeetsTarget(nonce) {
		t.Fatalf("nonce: %d does not meet the target", nonce)
	}
	for n := uint64(0); n < nonce; n += 1 {
		if testPuzzle.MeetsTarget(n) {
			t.Fatalf("nonce: %d is valid but was skipped for: %d", n, nonce)
		}
	}
}

func TestSequentialAttempts(t *testing.T) {
	attempts := counter.Counter(0)
	s := solver.Sequential{Attempts: &attempts}
	nonce := s.Solve(testPuzzle)

	if actual := attempts.Uint64(); nonce+1 != actual {
		t.Fatalf("attempts: actual: %d  expected: %d", actual, nonce+1)
	}
}

func TestBatchReturnsValid(t *testing.T) {
	attempts := counter.Counter(0)
	b := solver.Batch{
		Size:     256,
		Units:    3,
		Attempts: &attempts,
	}
	nonce := b.Solve(testPuzzle)

	if !testPuzzle.MeetsTarget(nonce) {
		t.Fatalf("nonce: %d does not meet the target", nonce)
	}
	if a := attempts.Uint64(); 0 == a || 0 != a%256 {
		t.Fatalf("attempts: %d is not a positive multiple of the batch size", a)
	}
}

// more units than nonces in a batch leaves some units idle
func TestBatchMoreUnitsThanNonces(t *testing.T) {
	b := solver.Batch{
		Size:  4,
		Units: 16,
	}
	p := puzzle.Puzzle{
		Data:       "tiny batches",
		Difficulty: 1,
	}
	nonce := b.Solve(p)
	if !p.MeetsTarget(nonce) {
		t.Fatalf("nonce: %d does not meet the target", nonce)
	}
}

// the batch engine may return a different nonce than the sequential
// one, but both must verify under the same puzzle
func TestEnginesAgree(t *testing.T) {
	seq := solver.Sequential{}
	bat := solver.Batch{
		Size:  512,
		Units: 4,
	}

	for _, data := range []string{"first", "second", "third"} {
		p := puzzle.Puzzle{
			Data:       data,
			Difficulty: 3,
		}
		s := puzzle.Solution{Puzzle: p, Nonce: seq.Solve(p)}
		b := puzzle.Solution{Puzzle: p, Nonce: bat.Solve(p)}

		if ok, err := s.Verify(); nil != err || !ok {
			t.Fatalf("sequential solution failed to verify: ok: %v  err: %v", ok, err)
		}
		if ok, err := b.Verify(); nil != err || !ok {
			t.Fatalf("batch solution failed to verify: ok: %v  err: %v", ok, err)
		}
		if seq.Solve(p) != s.Nonce {
			t.Fatal("sequential engine is not deterministic")
		}
	}
}

// each extra difficulty bit halves the chance that any one nonce is
// valid, so the expected scan length grows with difficulty
func TestDifficultyScaling(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical test in short mode")
	}

	const samples = 120
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	r := rand.New(rand.NewSource(42))
	data := make([]string, samples)
	for i := 0; i < samples; i += 1 {
		buffer := make([]byte, 8)
		for j := range buffer {
			buffer[j] = alphabet[r.Intn(len(alphabet))]
		}
		data[i] = string(buffer)
	}

	seq := solver.Sequential{}

	meanTrials := func(difficulty uint64) float64 {
		total := uint64(0)
		for _, d := range data {
			p := puzzle.Puzzle{Data: d, Difficulty: difficulty}
			total += seq.Solve(p) + 1
		}
		return float64(total) / samples
	}

	mean3 := meanTrials(3)
	mean4 := meanTrials(4)
	mean5 := meanTrials(5)

	if !(mean3 < mean4 && mean4 < mean5) {
		t.Fatalf("mean trials are not increasing: d3: %.1f  d4: %.1f  d5: %.1f", mean3, mean4, mean5)
	}
	if mean5 < 2*mean3 {
		t.Fatalf("two extra bits should far more than double the work: d3: %.1f  d5: %.1f", mean3, mean5)
	}
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name   string
		expect string
	}{
		{"", "sequential"},
		{"sequential", "sequential"},
		{"batch", "batch"},
	}
	for _, item := range testCases {
		s, err := solver.New(item.name, 0, 0, nil)
		if nil != err {
			t.Fatalf("New(%q) error: %s", item.name, err)
		}
		if item.expect != s.Name() {
			t.Fatalf("New(%q) engine: actual: %q  expected: %q", item.name, s.Name(), item.expect)
		}
	}

	if _, err := solver.New("quantum", 0, 0, nil); nil == err {
		t.Fatal("unexpected success for an unknown engine name")
	}
}

// reference check: both engines rely on the shared digest
func TestTargetBoundary(t *testing.T) {
	p := puzzle.Puzzle{
		Data:       "boundary",
		Difficulty: 2,
	}
	nonce := solver.Sequential{}.Solve(p)
	if d := mixdigest.Digest(p.Data, nonce); d >= p.Target() {
		t.Fatalf("digest: 0x%016x is not below target: 0x%016x", d, p.Target())
	}
}
