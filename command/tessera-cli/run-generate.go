// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	zmq "github.com/pebbe/zmq4"
	"github.com/urfave/cli"

	"github.com/tessera-net/tesserad/account"
	"github.com/tessera-net/tesserad/zmqutil"
)

// output form of one fresh signing key
type signingKeyPair struct {
	SigningKey string `json:"signing_key,omitempty"`
	PublicKey  string `json:"public_key,omitempty"`
	Account    string `json:"account"`
}

// output form of one fresh transport key pair
type transportKeyPair struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	output := c.String("output")

	if c.Bool("transport") {

		if "" != output {
			publicFile := output + ".public"
			privateFile := output + ".private"
			err := zmqutil.MakeKeyPair(publicFile, privateFile)
			if nil != err {
				return err
			}
			fmt.Fprintf(m.w, "written: %q and %q\n", publicFile, privateFile)
			return nil
		}

		publicKey, privateKey, err := zmq.NewCurveKeypair()
		if nil != err {
			return err
		}

		result := transportKeyPair{
			PublicKey:  hex.EncodeToString([]byte(zmq.Z85decode(publicKey))),
			PrivateKey: hex.EncodeToString([]byte(zmq.Z85decode(privateKey))),
		}
		printJson(m.w, result)
		return nil
	}

	if "" != output {
		key, err := account.MakeSigningKeyFile(output, m.testnet)
		if nil != err {
			return err
		}
		fmt.Fprintf(m.w, "written: %q\n", output)
		printJson(m.w, signingKeyPair{
			Account: key.Account().String(),
		})
		return nil
	}

	key, err := account.NewPrivateKey(m.testnet)
	if nil != err {
		return err
	}

	result := signingKeyPair{
		SigningKey: key.Seed(),
		PublicKey:  hex.EncodeToString(key.Account().PublicKey),
		Account:    key.Account().String(),
	}

	if m.verbose {
		fmt.Fprintf(m.e, "keyPair: %#v\n", result)
	}

	printJson(m.w, result)
	return nil
}
