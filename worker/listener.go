// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package worker

import (
	"encoding/json"
	"strconv"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/mode"
	"github.com/tessera-net/tesserad/puzzle"
	"github.com/tessera-net/tesserad/util"
	"github.com/tessera-net/tesserad/version"
	"github.com/tessera-net/tesserad/zmqutil"
)

const (
	listenerZapDomain = "worker"
	listenerSignal    = "inproc://tessera-worker-signal"
)

// request and reply frame prefixes
const (
	puzzleRequest = "P"
	infoRequest   = "I"
	solutionReply = "S"
	errorReply    = "E"
)

type listener struct {
	log     *logger.L
	push    *zmq.Socket // signal send
	pull    *zmq.Socket // signal receive
	socket4 *zmq.Socket // IPv4 traffic
	socket6 *zmq.Socket // IPv6 traffic
}

// type to hold server info
type serverInfo struct {
	Version  string `json:"version"`
	Network  string `json:"network"`
	Mode     string `json:"mode"`
	Engine   string `json:"engine"`
	Uptime   string `json:"uptime"`
	Requests uint64 `json:"requests"`
	Replays  uint64 `json:"replays"`
	Solved   uint64 `json:"solved"`
	Attempts uint64 `json:"attempts"`
}

// initialise the listener
func (lstn *listener) initialise(privateKey []byte, publicKey []byte, listen []*util.Connection) error {

	log := logger.New("listener")
	lstn.log = log

	log.Info("initialising…")

	// signalling channel
	var err error
	lstn.push, lstn.pull, err = zmqutil.NewSignalPair(listenerSignal)
	if nil != err {
		return err
	}

	// allocate IPv4 and IPv6 sockets
	lstn.socket4, lstn.socket6, err = zmqutil.NewBind(log, zmq.REP, listenerZapDomain, privateKey, publicKey, listen)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	return nil
}

// wait for incoming requests, process them and reply
func (lstn *listener) Run(args interface{}, shutdown <-chan struct{}) {

	log := lstn.log

	log.Info("starting…")

	go func() {
		poller := zmqutil.NewPoller()
		if nil != lstn.socket4 {
			poller.Add(lstn.socket4, zmq.POLLIN)
		}
		if nil != lstn.socket6 {
			poller.Add(lstn.socket6, zmq.POLLIN)
		}
		poller.Add(lstn.pull, zmq.POLLIN)
	loop:
		for {
			sockets, _ := poller.Poll(-1)
			for _, socket := range sockets {
				switch s := socket.Socket; s {
				case lstn.socket4:
					lstn.process(lstn.socket4)
				case lstn.socket6:
					lstn.process(lstn.socket6)
				case lstn.pull:
					s.RecvMessageBytes(0)
					break loop
				}
			}
		}
		log.Info("shutting down…")
		lstn.pull.Close()
		if nil != lstn.socket4 {
			lstn.socket4.Close()
		}
		if nil != lstn.socket6 {
			lstn.socket6.Close()
		}
		log.Info("stopped")
	}()

	// wait for shutdown
	<-shutdown
	lstn.push.SendMessage("stop")
	lstn.push.Close()
}

// process one request and reply to the client
func (lstn *listener) process(socket *zmq.Socket) {

	log := lstn.log

	data, err := socket.RecvMessageBytes(0)
	if nil != err {
		log.Errorf("receive error: %s", err)
		return
	}

	reply := buildReply(log, data)

	last := len(reply) - 1
	for i, frame := range reply {
		flag := zmq.SNDMORE
		if last == i {
			flag = 0
		}
		_, err := socket.SendBytes(frame, flag)
		logger.PanicIfError("listener send", err)
	}
}

// build the reply frames for one request
//
// always returns at least an error reply
func buildReply(log *logger.L, data [][]byte) [][]byte {

	if len(data) < 2 {
		return errorFrames(fault.InvalidWorkerRequest)
	}

	fn := string(data[0])
	network := string(data[1])

	globalData.RLock()
	engine := globalData.engine
	limiter := globalData.limiter
	answers := globalData.answers
	replayTTL := globalData.replayTTL
	myNetwork := globalData.network
	globalData.RUnlock()

	if network != myNetwork {
		log.Warnf("request from wrong network: %q", network)
		return errorFrames(fault.WrongNetwork)
	}

	switch fn {
	case puzzleRequest:
		globalData.requests.Increment()

		if mode.IsNot(mode.Normal) {
			return errorFrames(fault.NotAvailable)
		}

		if !limiter.Allow() {
			log.Warn("rate limit exceeded")
			return errorFrames(fault.RateLimiting)
		}

		if 3 != len(data) {
			return errorFrames(fault.InvalidWorkerRequest)
		}

		p, err := puzzle.DecodePuzzle(data[2])
		if nil != err {
			log.Warnf("puzzle decode error: %s", err)
			return errorFrames(err)
		}

		// a coordinator retry is answered from cache without re-searching
		key := replayKey(p)
		if cached, found := answers.Get(key); found {
			globalData.replays.Increment()
			log.Debugf("replay answer for: %q", key)
			return [][]byte{[]byte(solutionReply), cached.([]byte)}
		}

		start := time.Now()
		nonce := engine.Solve(p)
		globalData.solved.Increment()
		log.Infof("solved: difficulty: %d  nonce: %d  elapsed: %v", p.Difficulty, nonce, time.Since(start))

		solution := puzzle.Solution{
			Puzzle: p,
			Nonce:  nonce,
		}
		encoded, err := solution.Encode()
		if nil != err {
			return errorFrames(err)
		}
		answers.Set(key, encoded, replayTTL)

		return [][]byte{[]byte(solutionReply), encoded}

	case infoRequest:
		if 2 != len(data) {
			return errorFrames(fault.InvalidWorkerRequest)
		}

		info := serverInfo{
			Version:  version.Version,
			Network:  myNetwork,
			Mode:     mode.String(),
			Engine:   engine.Name(),
			Uptime:   time.Since(globalData.startTime).String(),
			Requests: globalData.requests.Uint64(),
			Replays:  globalData.replays.Uint64(),
			Solved:   globalData.solved.Uint64(),
			Attempts: globalData.attempts.Uint64(),
		}
		result, err := json.Marshal(info)
		if nil != err {
			return errorFrames(err)
		}
		return [][]byte{[]byte(infoRequest), result}

	default:
		log.Warnf("invalid request: %q", fn)
		return errorFrames(fault.InvalidWorkerRequest)
	}
}

// an error reply
func errorFrames(err error) [][]byte {
	return [][]byte{[]byte(errorReply), []byte(err.Error())}
}

// replay cache key
//
// the difficulty segment is colon free so the key is unambiguous
func replayKey(p puzzle.Puzzle) string {
	return p.Data + ":" + strconv.FormatUint(p.Difficulty, 10)
}
