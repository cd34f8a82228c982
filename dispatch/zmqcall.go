// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/puzzle"
	"github.com/tessera-net/tesserad/zmqutil"
)

// request and reply type prefixes on the wire
const (
	puzzleRequest = "P"
	solutionReply = "S"
	errorReply    = "E"
)

// ZMQ - deliver assignments over encrypted REQ sockets
//
// a fresh socket is used for every call so one wedged worker cannot
// poison later rounds.  the socket timeout is the transport level
// backstop under the engine's own limit.
type ZMQ struct {
	privateKey []byte
	publicKey  []byte
	network    string
	timeout    time.Duration
}

// NewZMQ - create an invoker using the daemon's transport keypair
func NewZMQ(privateKey []byte, publicKey []byte, network string, timeout time.Duration) *ZMQ {
	if 0 == timeout {
		timeout = DefaultTimeout
	}
	return &ZMQ{
		privateKey: privateKey,
		publicKey:  publicKey,
		network:    network,
		timeout:    timeout,
	}
}

// Invoke - send one puzzle and decode the worker's reply
func (z *ZMQ) Invoke(job Job) (puzzle.Solution, error) {

	client, err := zmqutil.NewClient(zmq.REQ, z.privateKey, z.publicKey, z.timeout)
	if nil != err {
		return puzzle.Solution{}, err
	}
	defer client.Close()

	err = client.Connect(job.Address, job.Key)
	if nil != err {
		return puzzle.Solution{}, err
	}

	data, err := job.Puzzle.Encode()
	if nil != err {
		return puzzle.Solution{}, err
	}

	err = client.Send(puzzleRequest, z.network, data)
	if nil != err {
		return puzzle.Solution{}, err
	}

	reply, err := client.Receive(0)
	if nil != err {
		return puzzle.Solution{}, err
	}

	return decodeReply(reply)
}

func decodeReply(reply [][]byte) (puzzle.Solution, error) {
	if 2 != len(reply) {
		return puzzle.Solution{}, fault.InvalidWorkerResponse
	}

	switch string(reply[0]) {
	case solutionReply:
		return puzzle.DecodeSolution(reply[1])
	case errorReply:
		return puzzle.Solution{}, fault.WorkerError
	default:
		return puzzle.Solution{}, fault.InvalidWorkerResponse
	}
}
