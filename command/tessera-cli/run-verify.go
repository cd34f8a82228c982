// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/mixdigest"
	"github.com/tessera-net/tesserad/puzzle"
)

type verifyResult struct {
	Puzzle puzzle.Puzzle `json:"puzzle"`
	Nonce  uint64        `json:"nonce"`
	Digest string        `json:"digest"`
	Target string        `json:"target"`
	Ok     bool          `json:"ok"`
}

// recompute the digest of a claimed solution and compare to target
func runVerify(c *cli.Context) error {

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

	s := puzzle.Solution{
		Puzzle: p,
		Nonce:  c.Uint64("nonce"),
	}

	result := verifyResult{
		Puzzle: p,
		Nonce:  s.Nonce,
		Digest: fmt.Sprintf("%016x", mixdigest.Digest(p.Data, s.Nonce)),
		Target: fmt.Sprintf("%016x", p.Target()),
		Ok:     s.Verify(),
	}

	printJson(m.w, result)
	return nil
}
