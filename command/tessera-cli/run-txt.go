// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/registry"
)

type txtResult struct {
	UID       uint32 `json:"uid"`
	IPv4      string `json:"ipv4,omitempty"`
	IPv6      string `json:"ipv6,omitempty"`
	Port      uint16 `json:"port"`
	PublicKey string `json:"public_key"`
}

// decode a worker TXT record exactly the way a registry would
func runTxt(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	record := c.String("record")
	if "" == record {
		return fault.InvalidDnsTxtRecord
	}

	t, err := registry.Parse(record)
	if nil != err {
		return err
	}

	result := txtResult{
		UID:       t.UID,
		Port:      t.Port,
		PublicKey: hex.EncodeToString(t.PublicKey),
	}
	if nil != t.IPv4 {
		result.IPv4 = t.IPv4.String()
	}
	if nil != t.IPv6 {
		result.IPv6 = t.IPv6.String()
	}

	printJson(m.w, result)
	return nil
}
