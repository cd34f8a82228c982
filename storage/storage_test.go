// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/storage"
	"github.com/tessera-net/tesserad/weight"
)

// test database file
const (
	databaseName = "test-archive" // Initialise appends .leveldb
)

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseName + ".leveldb")
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
}

// fixed time for reproducible records
var testTime = time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC)

func makeRecord(difficulty uint64, weights []weight.Weight) *storage.Record {
	return &storage.Record{
		Timestamp:  testTime,
		Data:       "Ax9!kQ2z",
		Difficulty: difficulty,
		Polled:     len(weights) + 1,
		Answered:   len(weights),
		Valid:      len(weights),
		Weights:    weights,
		Committed:  len(weights) > 0,
		Elapsed:    1500,
	}
}

func putRecord(t *testing.T, record *storage.Record, expected uint64) {
	sequence, err := storage.PutRound(record)
	if nil != err {
		t.Fatalf("put round error: %s", err)
	}
	if sequence != expected {
		t.Fatalf("wrong sequence: got: %d  expected: %d", sequence, expected)
	}
}

func TestRoundArchive(t *testing.T) {
	setup(t)
	defer teardown(t)

	if !storage.IsAvailable() {
		t.Fatal("storage not available after initialise")
	}

	weights := []weight.Weight{
		{Worker: 5, Value: 600},
		{Worker: 9, Value: 400},
	}

	putRecord(t, makeRecord(16, weights), 0)
	putRecord(t, makeRecord(17, weights[:1]), 1)
	putRecord(t, makeRecord(18, nil), 2)

	record, err := storage.GetRound(0)
	if nil != err {
		t.Fatalf("get round error: %s", err)
	}
	if 0 != record.Sequence {
		t.Errorf("wrong sequence: got: %d  expected: 0", record.Sequence)
	}
	if 16 != record.Difficulty {
		t.Errorf("wrong difficulty: got: %d  expected: 16", record.Difficulty)
	}
	if "Ax9!kQ2z" != record.Data {
		t.Errorf("wrong data: got: %q  expected: %q", record.Data, "Ax9!kQ2z")
	}
	if 3 != record.Polled || 2 != record.Answered || 2 != record.Valid {
		t.Errorf("wrong counts: got: %d/%d/%d  expected: 3/2/2", record.Polled, record.Answered, record.Valid)
	}
	if !record.Committed {
		t.Error("wrong committed flag")
	}
	if !record.Timestamp.Equal(testTime) {
		t.Errorf("wrong timestamp: got: %v  expected: %v", record.Timestamp, testTime)
	}
	if !reflect.DeepEqual(weights, record.Weights) {
		t.Errorf("wrong weights: got: %v  expected: %v", record.Weights, weights)
	}

	last, err := storage.LastRound()
	if nil != err {
		t.Fatalf("last round error: %s", err)
	}
	if 2 != last.Sequence {
		t.Errorf("wrong last sequence: got: %d  expected: 2", last.Sequence)
	}

	// newest first
	recent, err := storage.RecentRounds(2)
	if nil != err {
		t.Fatalf("recent rounds error: %s", err)
	}
	if 2 != len(recent) || 2 != recent[0].Sequence || 1 != recent[1].Sequence {
		t.Errorf("wrong recent rounds: %v", recent)
	}

	// asking for more than stored returns all
	recent, err = storage.RecentRounds(10)
	if nil != err {
		t.Fatalf("recent rounds error: %s", err)
	}
	if 3 != len(recent) {
		t.Errorf("wrong recent count: got: %d  expected: 3", len(recent))
	}

	_, err = storage.GetRound(7)
	if fault.RoundNotFound != err {
		t.Errorf("wrong error for missing round: %v", err)
	}

	_, err = storage.RecentRounds(0)
	if fault.InvalidCount != err {
		t.Errorf("wrong error for zero count: %v", err)
	}
}

func TestRoundPersistence(t *testing.T) {
	setup(t)
	defer teardown(t)

	putRecord(t, makeRecord(16, nil), 0)
	putRecord(t, makeRecord(16, nil), 1)

	// check that restarting database keeps data
	storage.Finalise()
	err := storage.Initialise(databaseName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	last, err := storage.LastRound()
	if nil != err {
		t.Fatalf("last round error: %s", err)
	}
	if 1 != last.Sequence {
		t.Errorf("wrong last sequence: got: %d  expected: 1", last.Sequence)
	}

	// sequence numbering continues
	putRecord(t, makeRecord(16, nil), 2)
}

func TestCommitRecord(t *testing.T) {
	setup(t)
	defer teardown(t)

	if 0 != storage.CommitCount() {
		t.Errorf("wrong initial commit count: %d", storage.CommitCount())
	}
	if nil != storage.LastCommit() {
		t.Error("unexpected initial commit document")
	}

	first := []byte(`{"subnet":7,"timestamp":1}`)
	second := []byte(`{"subnet":7,"timestamp":2}`)

	err := storage.SaveCommit(first)
	if nil != err {
		t.Fatalf("save commit error: %s", err)
	}
	err = storage.SaveCommit(second)
	if nil != err {
		t.Fatalf("save commit error: %s", err)
	}

	if 2 != storage.CommitCount() {
		t.Errorf("wrong commit count: got: %d  expected: 2", storage.CommitCount())
	}
	if !bytes.Equal(second, storage.LastCommit()) {
		t.Errorf("wrong last commit: %s", storage.LastCommit())
	}
}

func TestRoundCursor(t *testing.T) {
	setup(t)
	defer teardown(t)

	for i := 0; i < 5; i += 1 {
		putRecord(t, makeRecord(16, nil), uint64(i))
	}

	cursor := storage.Pool.Rounds.NewFetchCursor()

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, 2)
	cursor.Seek(key)

	elements, err := cursor.Fetch(2)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if 2 != len(elements) {
		t.Fatalf("wrong element count: got: %d  expected: 2", len(elements))
	}
	if 2 != binary.BigEndian.Uint64(elements[0].Key) || 3 != binary.BigEndian.Uint64(elements[1].Key) {
		t.Errorf("wrong keys: %x %x", elements[0].Key, elements[1].Key)
	}

	// cursor advances without overlap
	elements, err = cursor.Fetch(5)
	if nil != err {
		t.Fatalf("fetch error: %s", err)
	}
	if 1 != len(elements) || 4 != binary.BigEndian.Uint64(elements[0].Key) {
		t.Errorf("wrong continuation: %v", elements)
	}

	_, err = cursor.Fetch(0)
	if fault.InvalidCount != err {
		t.Errorf("wrong error for zero count: %v", err)
	}
}

func TestDoubleInitialise(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := storage.Initialise(databaseName, storage.ReadWrite)
	if fault.AlreadyInitialised != err {
		t.Errorf("wrong error for double initialise: %v", err)
	}
}
