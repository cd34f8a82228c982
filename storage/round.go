// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/weight"
)

// metadata pool keys
var (
	commitCountKey = []byte("commits")
	lastCommitKey  = []byte("last-commit")
)

// Record - one archived verification round
type Record struct {
	Sequence   uint64          `json:"sequence"`
	Timestamp  time.Time       `json:"timestamp"`
	Data       string          `json:"data"`
	Difficulty uint64          `json:"difficulty"`
	Polled     int             `json:"polled"`
	Answered   int             `json:"answered"`
	Valid      int             `json:"valid"`
	Weights    []weight.Weight `json:"weights"`
	Committed  bool            `json:"committed"`
	Elapsed    uint64          `json:"elapsed_ms"`
}

// PutRound - append a round record to the archive
//
// the sequence number is assigned here and returned
func PutRound(record *Record) (uint64, error) {
	if nil == Pool.Rounds {
		return 0, fault.NotInitialised
	}

	sequence := uint64(0)
	if last, ok := Pool.Rounds.LastElement(); ok {
		sequence = binary.BigEndian.Uint64(last.Key) + 1
	}

	record.Sequence = sequence
	record.Timestamp = record.Timestamp.UTC()

	data, err := json.Marshal(record)
	if nil != err {
		return 0, err
	}

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, sequence)
	Pool.Rounds.Put(key, data)

	return sequence, nil
}

// GetRound - fetch one archived round by sequence number
func GetRound(sequence uint64) (*Record, error) {
	if nil == Pool.Rounds {
		return nil, fault.NotInitialised
	}

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, sequence)

	data := Pool.Rounds.Get(key)
	if nil == data {
		return nil, fault.RoundNotFound
	}

	record := &Record{}
	err := json.Unmarshal(data, record)
	if nil != err {
		return nil, err
	}
	return record, nil
}

// LastRound - fetch the most recently archived round
func LastRound() (*Record, error) {
	if nil == Pool.Rounds {
		return nil, fault.NotInitialised
	}

	element, ok := Pool.Rounds.LastElement()
	if !ok {
		return nil, fault.RoundNotFound
	}

	record := &Record{}
	err := json.Unmarshal(element.Value, record)
	if nil != err {
		return nil, err
	}
	return record, nil
}

// RecentRounds - fetch up to count archived rounds, newest first
func RecentRounds(count int) ([]Record, error) {
	if nil == Pool.Rounds {
		return nil, fault.NotInitialised
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	elements := Pool.Rounds.LastElements(count)

	records := make([]Record, 0, len(elements))
	for _, element := range elements {
		record := Record{}
		err := json.Unmarshal(element.Value, &record)
		if nil != err {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// SaveCommit - record the latest ledger commit document
func SaveCommit(data []byte) error {
	if nil == Pool.Metadata {
		return fault.NotInitialised
	}

	n, _ := Pool.Metadata.GetN(commitCountKey)
	Pool.Metadata.PutN(commitCountKey, n+1)
	Pool.Metadata.Put(lastCommitKey, data)
	return nil
}

// CommitCount - total commits recorded since the archive was created
func CommitCount() uint64 {
	if nil == Pool.Metadata {
		return 0
	}
	n, _ := Pool.Metadata.GetN(commitCountKey)
	return n
}

// LastCommit - the latest ledger commit document, nil if none yet
func LastCommit() []byte {
	if nil == Pool.Metadata {
		return nil
	}
	return Pool.Metadata.Get(lastCommitKey)
}
