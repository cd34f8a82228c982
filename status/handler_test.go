// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package status

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/tessera-net/tesserad/fixtures"
	"github.com/tessera-net/tesserad/mode"
	"github.com/tessera-net/tesserad/storage"
	"github.com/tessera-net/tesserad/subnet"
)

const databaseName = "test-status"

type eResp struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func setupTest(t *testing.T) {
	fixtures.SetupTestLogger()
	err := mode.Initialise(subnet.Local)
	if nil != err {
		t.Fatalf("mode initialise error: %s", err)
	}
}

func teardownTest() {
	mode.Finalise()
	fixtures.TeardownTestLogger()
}

func removeFiles() {
	os.RemoveAll(databaseName + ".leveldb")
}

func setupStorage(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardownStorage() {
	storage.Finalise()
	removeFiles()
}

func makeHandler(maximum uint64, apis ...string) *httpHandler {
	allow := make(map[string][]*net.IPNet)
	_, ipNet, _ := net.ParseCIDR("192.0.2.1/32")
	for _, api := range apis {
		allow[api] = []*net.IPNet{ipNet}
	}
	return &httpHandler{
		log:                logger.New(fixtures.LogCategory),
		version:            "1.0",
		start:              time.Now(),
		allow:              allow,
		maximumConnections: maximum,
	}
}

func TestRoot(t *testing.T) {
	setupTest(t)
	defer teardownTest()

	h := makeHandler(5)

	req := httptest.NewRequest("GET", "http://not.found", nil)
	w := httptest.NewRecorder()
	h.root(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)

	assert.Equal(t, "not found", j.Error, "wrong response")
	assert.Equal(t, http.StatusNotFound, j.Code, "wrong http code")
}

func TestDetails(t *testing.T) {
	setupTest(t)
	defer teardownTest()

	h := makeHandler(5, "details")

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.details(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")

	var j detailsReply
	err := json.NewDecoder(resp.Body).Decode(&j)
	assert.Nil(t, err, "wrong reply encoding")

	assert.Equal(t, subnet.Local, j.Subnet, "wrong subnet")
	assert.Equal(t, "Priming", j.Mode, "wrong mode")
	assert.Equal(t, "1.0", j.Version, "wrong version")
	assert.False(t, j.Archive.Available, "archive must be off")
	assert.Equal(t, uint64(1), j.Connections, "wrong connection count")
}

func TestDetailsWhenWrongHTTPMethod(t *testing.T) {
	setupTest(t)
	defer teardownTest()

	h := makeHandler(5, "details")

	req := httptest.NewRequest("POST", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.details(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, "method not allowed", j.Error, "wrong method")
}

func TestDetailsWhenNotAllowed(t *testing.T) {
	setupTest(t)
	defer teardownTest()

	h := makeHandler(5)

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.details(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, "forbidden", j.Error, "wrong not allow")
}

func TestDetailsWhenTooManyConnections(t *testing.T) {
	setupTest(t)
	defer teardownTest()

	h := makeHandler(0, "details")

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.details(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, "Too Many Requests", j.Error, "wrong limit reply")
}

func TestRoundsWithoutArchive(t *testing.T) {
	setupTest(t)
	defer teardownTest()

	h := makeHandler(5, "rounds")

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.rounds(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, "service unavailable", j.Error, "wrong response")
	assert.Equal(t, http.StatusServiceUnavailable, j.Code, "wrong http code")
}

func TestRounds(t *testing.T) {
	setupTest(t)
	defer teardownTest()
	setupStorage(t)
	defer teardownStorage()

	for i := 0; i < 3; i += 1 {
		_, err := storage.PutRound(&storage.Record{
			Timestamp:  time.Now(),
			Difficulty: uint64(10 + i),
			Polled:     4,
			Answered:   3,
			Valid:      3,
		})
		assert.Nil(t, err, "wrong PutRound")
	}

	h := makeHandler(5, "rounds")

	req := httptest.NewRequest("GET", "http://test.com?count=2", nil)
	w := httptest.NewRecorder()
	h.rounds(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")

	var records []storage.Record
	err := json.NewDecoder(resp.Body).Decode(&records)
	assert.Nil(t, err, "wrong reply encoding")
	assert.Equal(t, 2, len(records), "wrong record count")
	assert.Equal(t, uint64(2), records[0].Sequence, "wrong first record")
	assert.Equal(t, uint64(1), records[1].Sequence, "wrong second record")

	// out of range count parameters fall back to the default
	req = httptest.NewRequest("GET", "http://test.com?count=9999", nil)
	w = httptest.NewRecorder()
	h.rounds(w, req)

	records = nil
	err = json.NewDecoder(w.Result().Body).Decode(&records)
	assert.Nil(t, err, "wrong reply encoding")
	assert.Equal(t, 3, len(records), "wrong record count")
}

func TestCommit(t *testing.T) {
	setupTest(t)
	defer teardownTest()
	setupStorage(t)
	defer teardownStorage()

	h := makeHandler(5, "commit")

	// nothing committed yet
	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.commit(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, "not found", j.Error, "wrong response")

	document := []byte(`{"subnet":9,"weights":[{"worker":5,"value":1000}]}`)
	err := storage.SaveCommit(document)
	assert.Nil(t, err, "wrong SaveCommit")

	req = httptest.NewRequest("GET", "http://test.com", nil)
	w = httptest.NewRecorder()
	h.commit(w, req)

	resp = w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"), "wrong content type")
	assert.Equal(t, document, w.Body.Bytes(), "wrong commit document")
}

func TestIsAllowed(t *testing.T) {
	setupTest(t)
	defer teardownTest()

	allow := make(map[string][]*net.IPNet)
	_, v4Net, _ := net.ParseCIDR("192.0.2.0/24")
	_, v6Net, _ := net.ParseCIDR("2001:db8::/32")
	allow["details"] = []*net.IPNet{v4Net, v6Net}

	h := &httpHandler{
		log:   logger.New(fixtures.LogCategory),
		allow: allow,
	}

	testItems := []struct {
		remote  string
		api     string
		allowed bool
	}{
		{"192.0.2.1:1234", "details", true},
		{"192.0.2.200:80", "details", true},
		{"192.0.3.1:1234", "details", false},
		{"[2001:db8::1]:443", "details", true},
		{"[2001:db9::1]:443", "details", false},
		{"192.0.2.1:1234", "rounds", false},
		{"no-port", "details", false},
	}

	for i, item := range testItems {
		r := &http.Request{RemoteAddr: item.remote}
		assert.Equal(t, item.allowed, h.isAllowed(item.api, r), "wrong allow: %d: %v", i, item)
	}
}
