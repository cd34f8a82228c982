// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package status

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/coordinator"
	"github.com/tessera-net/tesserad/counter"
	"github.com/tessera-net/tesserad/mode"
	"github.com/tessera-net/tesserad/storage"
)

// limits for the rounds query
const (
	defaultCount = 10
	maximumCount = 100
)

// currently served requests over all handlers
var connectionCount counter.Counter

// the argument passed to the handlers
type httpHandler struct {
	log                *logger.L
	version            string
	start              time.Time
	allow              map[string][]*net.IPNet
	maximumConnections uint64
}

// this matches anything not matched and returns error
func (s *httpHandler) root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// check the remote address against the allow list for one api
func (s *httpHandler) isAllowed(api string, r *http.Request) bool {
	last := strings.LastIndex(r.RemoteAddr, ":")
	if last < 0 {
		return false
	}

	cidr, ok := s.allow[api]
	if !ok {
		return false
	}

	addr := strings.Trim(r.RemoteAddr[:last], "[]")
	ip := net.ParseIP(addr)
	if nil == ip {
		return false
	}

	for _, n := range cidr {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

type roundCounters struct {
	Started   uint64 `json:"started"`
	Committed uint64 `json:"committed"`
}

type archiveInfo struct {
	Available bool   `json:"available"`
	Rounds    uint64 `json:"rounds"`
	Commits   uint64 `json:"commits"`
}

type detailsReply struct {
	Subnet      string        `json:"subnet"`
	Mode        string        `json:"mode"`
	Version     string        `json:"version"`
	Uptime      string        `json:"uptime"`
	Rounds      roundCounters `json:"rounds"`
	Archive     archiveInfo   `json:"archive"`
	Connections uint64        `json:"connections"`
}

// GET to fetch the daemon state summary
// (restricted by the "details" allow list)
func (s *httpHandler) details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.isAllowed("details", r) {
		s.log.Warnf("deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if connectionCount.Uint64() >= s.maximumConnections {
		sendTooManyRequests(w)
		return
	}

	connectionCount.Increment()
	defer connectionCount.Decrement()

	started, committed := coordinator.Counts()

	archive := archiveInfo{}
	if storage.IsAvailable() {
		archive.Available = true
		if record, err := storage.LastRound(); nil == err {
			archive.Rounds = record.Sequence + 1
		}
		archive.Commits = storage.CommitCount()
	}

	sendReply(w, detailsReply{
		Subnet:  mode.NetworkName(),
		Mode:    mode.String(),
		Version: s.version,
		Uptime:  time.Since(s.start).String(),
		Rounds: roundCounters{
			Started:   started,
			Committed: committed,
		},
		Archive:     archive,
		Connections: connectionCount.Uint64(),
	})
}

// GET to fetch archived rounds, newest first
// (restricted by the "rounds" allow list)
//
// query parameters:
//   count=<int>   [1..100  default: 10]
func (s *httpHandler) rounds(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.isAllowed("rounds", r) {
		s.log.Warnf("deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if connectionCount.Uint64() >= s.maximumConnections {
		sendTooManyRequests(w)
		return
	}

	connectionCount.Increment()
	defer connectionCount.Decrement()

	r.ParseForm()

	count := defaultCount
	n, err := strconv.Atoi(r.Form.Get("count"))
	if nil == err && n >= 1 && n <= maximumCount {
		count = n
	}

	if !storage.IsAvailable() {
		sendServiceUnavailable(w)
		return
	}

	records, err := storage.RecentRounds(count)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	sendReply(w, records)
}

// GET to fetch the latest ledger commit document
// (restricted by the "commit" allow list)
func (s *httpHandler) commit(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.isAllowed("commit", r) {
		s.log.Warnf("deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return
	}

	if connectionCount.Uint64() >= s.maximumConnections {
		sendTooManyRequests(w)
		return
	}

	connectionCount.Increment()
	defer connectionCount.Decrement()

	if !storage.IsAvailable() {
		sendServiceUnavailable(w)
		return
	}

	data := storage.LastCommit()
	if nil == data {
		sendNotFound(w)
		return
	}

	// already stored as the JSON commit document
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, "Too Many Requests", http.StatusTooManyRequests)
}
func sendServiceUnavailable(w http.ResponseWriter) {
	sendError(w, "service unavailable", http.StatusServiceUnavailable)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	w.Write(text)
}
