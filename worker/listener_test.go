// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package worker

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/fixtures"
	"github.com/tessera-net/tesserad/mode"
	"github.com/tessera-net/tesserad/puzzle"
	"github.com/tessera-net/tesserad/solver"
	"github.com/tessera-net/tesserad/subnet"
)

// prepare just enough global state to drive buildReply directly
func setupWorker(t *testing.T) *logger.L {
	fixtures.SetupTestLogger()

	err := mode.Initialise(subnet.Local)
	if nil != err {
		t.Fatalf("mode initialise error: %s", err)
	}
	mode.Set(mode.Normal)

	globalData.requests = 0
	globalData.replays = 0
	globalData.solved = 0
	globalData.attempts = 0

	engine, err := solver.New("", 0, 0, &globalData.attempts)
	if nil != err {
		t.Fatalf("solver create error: %s", err)
	}
	globalData.engine = engine
	globalData.limiter = rate.NewLimiter(rate.Limit(100), 100)
	globalData.replayTTL = time.Minute
	globalData.answers = gocache.New(time.Minute, time.Minute)
	globalData.network = mode.NetworkName()
	globalData.startTime = time.Now()

	return logger.New(fixtures.LogCategory)
}

func teardownWorker(t *testing.T) {
	mode.Finalise()
	fixtures.TeardownTestLogger()
}

func solveRequest(p puzzle.Puzzle) [][]byte {
	encoded, _ := p.Encode()
	return [][]byte{[]byte(puzzleRequest), []byte(mode.NetworkName()), encoded}
}

func TestBuildReplySolvesPuzzle(t *testing.T) {
	log := setupWorker(t)
	defer teardownWorker(t)

	p := puzzle.Puzzle{Data: "test data", Difficulty: 2}

	reply := buildReply(log, solveRequest(p))
	if 2 != len(reply) || solutionReply != string(reply[0]) {
		t.Fatalf("wrong reply: %q", reply)
	}

	solution, err := puzzle.DecodeSolution(reply[1])
	if nil != err {
		t.Fatalf("solution decode error: %s", err)
	}
	if p != solution.Puzzle {
		t.Errorf("wrong puzzle echoed: %v", solution.Puzzle)
	}
	if !solution.Verify() {
		t.Errorf("invalid solution: nonce: %d", solution.Nonce)
	}

	if 1 != globalData.requests.Uint64() || 1 != globalData.solved.Uint64() {
		t.Errorf("wrong counters: requests: %d  solved: %d",
			globalData.requests.Uint64(), globalData.solved.Uint64())
	}
	if globalData.attempts.IsZero() {
		t.Error("attempt counter not advanced")
	}
}

func TestBuildReplyReplay(t *testing.T) {
	log := setupWorker(t)
	defer teardownWorker(t)

	p := puzzle.Puzzle{Data: "replayed data", Difficulty: 2}

	first := buildReply(log, solveRequest(p))
	second := buildReply(log, solveRequest(p))

	if solutionReply != string(second[0]) || !bytes.Equal(first[1], second[1]) {
		t.Errorf("replay differs: first: %q  second: %q", first[1], second[1])
	}
	if 1 != globalData.solved.Uint64() {
		t.Errorf("replay re-solved the puzzle: solved: %d", globalData.solved.Uint64())
	}
	if 1 != globalData.replays.Uint64() {
		t.Errorf("wrong replay counter: %d", globalData.replays.Uint64())
	}
}

func TestBuildReplyWrongNetwork(t *testing.T) {
	log := setupWorker(t)
	defer teardownWorker(t)

	p := puzzle.Puzzle{Data: "anything", Difficulty: 2}
	encoded, _ := p.Encode()
	frames := [][]byte{[]byte(puzzleRequest), []byte(subnet.Tessera), encoded}

	reply := buildReply(log, frames)
	if errorReply != string(reply[0]) || fault.WrongNetwork.Error() != string(reply[1]) {
		t.Errorf("wrong reply: %q", reply)
	}
}

func TestBuildReplyNotNormal(t *testing.T) {
	log := setupWorker(t)
	defer teardownWorker(t)

	mode.Set(mode.Priming)

	reply := buildReply(log, solveRequest(puzzle.Puzzle{Data: "early", Difficulty: 2}))
	if errorReply != string(reply[0]) || fault.NotAvailable.Error() != string(reply[1]) {
		t.Errorf("wrong reply: %q", reply)
	}
}

func TestBuildReplyBadPuzzle(t *testing.T) {
	log := setupWorker(t)
	defer teardownWorker(t)

	frames := [][]byte{[]byte(puzzleRequest), []byte(mode.NetworkName()), []byte("not json")}
	reply := buildReply(log, frames)
	if errorReply != string(reply[0]) || fault.InvalidPuzzleEncoding.Error() != string(reply[1]) {
		t.Errorf("wrong reply: %q", reply)
	}

	reply = buildReply(log, solveRequest(puzzle.Puzzle{Data: "x", Difficulty: 99}))
	if errorReply != string(reply[0]) || fault.DifficultyOutOfRange.Error() != string(reply[1]) {
		t.Errorf("wrong reply: %q", reply)
	}
}

func TestBuildReplyRateLimit(t *testing.T) {
	log := setupWorker(t)
	defer teardownWorker(t)

	globalData.limiter = rate.NewLimiter(rate.Limit(1), 1)

	first := buildReply(log, solveRequest(puzzle.Puzzle{Data: "limited", Difficulty: 1}))
	if solutionReply != string(first[0]) {
		t.Fatalf("wrong first reply: %q", first)
	}

	second := buildReply(log, solveRequest(puzzle.Puzzle{Data: "limited again", Difficulty: 1}))
	if errorReply != string(second[0]) || fault.RateLimiting.Error() != string(second[1]) {
		t.Errorf("wrong second reply: %q", second)
	}
}

func TestBuildReplyInfo(t *testing.T) {
	log := setupWorker(t)
	defer teardownWorker(t)

	buildReply(log, solveRequest(puzzle.Puzzle{Data: "for the counters", Difficulty: 2}))

	reply := buildReply(log, [][]byte{[]byte(infoRequest), []byte(mode.NetworkName())})
	if 2 != len(reply) || infoRequest != string(reply[0]) {
		t.Fatalf("wrong reply: %q", reply)
	}

	var info serverInfo
	err := json.Unmarshal(reply[1], &info)
	if nil != err {
		t.Fatalf("info decode error: %s", err)
	}
	if subnet.Local != info.Network {
		t.Errorf("wrong network: %q", info.Network)
	}
	if "sequential" != info.Engine {
		t.Errorf("wrong engine: %q", info.Engine)
	}
	if "Normal" != info.Mode {
		t.Errorf("wrong mode: %q", info.Mode)
	}
	if 1 != info.Requests || 1 != info.Solved {
		t.Errorf("wrong counters: %+v", info)
	}
}

func TestBuildReplyMalformed(t *testing.T) {
	log := setupWorker(t)
	defer teardownWorker(t)

	malformed := [][][]byte{
		{[]byte(puzzleRequest)},                                            // missing network
		{[]byte(puzzleRequest), []byte(mode.NetworkName())},                // missing puzzle
		{[]byte(infoRequest), []byte(mode.NetworkName()), []byte("extra")}, // excess frame
		{[]byte("X"), []byte(mode.NetworkName())},                          // unknown function
	}

	for i, frames := range malformed {
		reply := buildReply(log, frames)
		if errorReply != string(reply[0]) || fault.InvalidWorkerRequest.Error() != string(reply[1]) {
			t.Errorf("%d: wrong reply: %q", i, reply)
		}
	}
}
