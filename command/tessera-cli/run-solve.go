// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/tessera-net/tesserad/counter"
	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/mixdigest"
	"github.com/tessera-net/tesserad/puzzle"
	"github.com/tessera-net/tesserad/solver"
)

type solveResult struct {
	Puzzle   puzzle.Puzzle `json:"puzzle"`
	Nonce    uint64        `json:"nonce"`
	Digest   string        `json:"digest"`
	Engine   string        `json:"engine"`
	Attempts uint64        `json:"attempts"`
	Elapsed  string        `json:"elapsed"`
}

// run a local search outside any subnet round
//
// a high difficulty can keep this busy for a very long time, there
// is no abort other than the usual signals
func runSolve(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	data := c.String("data")
	if "" == data {
		return fault.DataIsRequired
	}

	p := puzzle.Puzzle{
		Data:       data,
		Difficulty: c.Uint64("difficulty"),
	}
	err := p.Validate()
	if nil != err {
		return err
	}

	var attempts counter.Counter
	engine, err := solver.New(c.String("engine"), c.Uint64("batch-size"), c.Int("units"), &attempts)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "engine: %s\n", engine.Name())
		fmt.Fprintf(m.e, "puzzle: %#v\n", p)
	}

	start := time.Now()
	nonce := engine.Solve(p)

	result := solveResult{
		Puzzle:   p,
		Nonce:    nonce,
		Digest:   fmt.Sprintf("%016x", mixdigest.Digest(p.Data, nonce)),
		Engine:   engine.Name(),
		Attempts: attempts.Uint64(),
		Elapsed:  time.Since(start).String(),
	}

	printJson(m.w, result)
	return nil
}
