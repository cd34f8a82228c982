// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/tessera-net/tesserad/zmqutil"
)

func TestSignalPair(t *testing.T) {
	push, pull, err := zmqutil.NewSignalPair("inproc://test-signal-pair")
	if nil != err {
		t.Fatalf("signal pair error: %s", err)
	}
	defer push.Close()
	defer pull.Close()

	if _, err := push.SendMessage("stop"); nil != err {
		t.Fatalf("send error: %s", err)
	}

	pull.SetRcvtimeo(time.Second)
	message, err := pull.RecvMessage(0)
	if nil != err {
		t.Fatalf("receive error: %s", err)
	}
	if 1 != len(message) || "stop" != message[0] {
		t.Fatalf("message: actual: %v  expected: [stop]", message)
	}
}

func TestPoller(t *testing.T) {
	push, pull, err := zmqutil.NewSignalPair("inproc://test-poller")
	if nil != err {
		t.Fatalf("signal pair error: %s", err)
	}
	defer push.Close()
	defer pull.Close()

	poller := zmqutil.NewPoller()
	poller.Add(pull, zmq.POLLIN)

	// nothing pending yet
	polled, err := poller.Poll(50 * time.Millisecond)
	if nil != err {
		t.Fatalf("poll error: %s", err)
	}
	if 0 != len(polled) {
		t.Fatalf("idle poll returned: %v", polled)
	}

	if _, err := push.SendMessage("ping"); nil != err {
		t.Fatalf("send error: %s", err)
	}

	polled, err = poller.Poll(time.Second)
	if nil != err {
		t.Fatalf("poll error: %s", err)
	}
	if 1 != len(polled) {
		t.Fatalf("poll results: actual: %d  expected: 1", len(polled))
	}

	// removal must stop events from being reported
	poller.Remove(pull)
	pull.RecvMessage(0)

	if _, err := push.SendMessage("ping"); nil != err {
		t.Fatalf("send error: %s", err)
	}
	polled, err = poller.Poll(50 * time.Millisecond)
	if nil != err {
		t.Fatalf("poll error: %s", err)
	}
	if 0 != len(polled) {
		t.Fatalf("poll after remove returned: %v", polled)
	}
}
