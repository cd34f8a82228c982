// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/urfave/cli"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/util"
	"github.com/tessera-net/tesserad/zmqutil"
)

const infoTimeout = 10 * time.Second

// request and reply frame prefixes
const (
	infoRequest = "I"
	errorReply  = "E"
)

// query one worker's status endpoint
func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	connect := c.String("connect")
	if "" == connect {
		if 0 == len(m.config.Connections) {
			return fault.ConnectIsRequired
		}
		connect = m.config.Connections[0]
	}

	address, serverPublicKey, err := splitConnect(connect)
	if nil != err {
		return err
	}

	conn, err := util.NewConnection(address)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", address)
		fmt.Fprintf(m.e, "network: %s\n", m.network)
	}

	// a throwaway transport key pair for this one request
	publicKey, privateKey, err := zmq.NewCurveKeypair()
	if nil != err {
		return err
	}

	client, err := zmqutil.NewClient(zmq.REQ, []byte(zmq.Z85decode(privateKey)), []byte(zmq.Z85decode(publicKey)), infoTimeout)
	if nil != err {
		return err
	}
	defer client.Close()

	err = client.Connect(conn, serverPublicKey)
	if nil != err {
		return err
	}

	err = client.Send(infoRequest, m.network)
	if nil != err {
		return err
	}

	reply, err := client.Receive(0)
	if nil != err {
		return err
	}
	if 2 != len(reply) {
		return fault.InvalidWorkerResponse
	}

	switch string(reply[0]) {
	case infoRequest:
		var info interface{}
		err = json.Unmarshal(reply[1], &info)
		if nil != err {
			return err
		}
		printJson(m.w, info)
		return nil

	case errorReply:
		return fmt.Errorf("worker error: %s", reply[1])

	default:
		return fault.InvalidWorkerResponse
	}
}
