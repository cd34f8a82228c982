// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/bits"

	"github.com/urfave/cli"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/mixdigest"
)

type digestResult struct {
	Data         string `json:"data"`
	Nonce        uint64 `json:"nonce"`
	Digest       string `json:"digest"`
	LeadingZeros int    `json:"leading_zeros"`
}

// compute the mixing digest of one payload and nonce pair
//
// the leading zero count is the highest difficulty this pair satisfies
func runDigest(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	data := c.String("data")
	if "" == data {
		return fault.DataIsRequired
	}
	nonce := c.Uint64("nonce")

	digest := mixdigest.Digest(data, nonce)

	result := digestResult{
		Data:         data,
		Nonce:        nonce,
		Digest:       fmt.Sprintf("%016x", digest),
		LeadingZeros: bits.LeadingZeros64(digest),
	}

	printJson(m.w, result)
	return nil
}
