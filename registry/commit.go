// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"
	"sort"

	"golang.org/x/crypto/sha3"

	"github.com/tessera-net/tesserad/account"
	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/weight"
)

// prefix of every signed commit message
const commitTag = "tessera.weights"

// Commit - one round's weight vector ready for the ledger
type Commit struct {
	SubnetID  uint32            `json:"subnet"`
	Timestamp uint64            `json:"timestamp"` // seconds since epoch
	Weights   []weight.Weight   `json:"weights"`
	Account   *account.Account  `json:"account,omitempty"`
	Signature account.Signature `json:"signature,omitempty"`
}

// Pack - the canonical byte form covered by the signature
//
// weight pairs are packed in ascending uid order regardless of how
// the vector is stored, so equal commits always sign identically
func (commit *Commit) Pack() []byte {

	weights := make([]weight.Weight, len(commit.Weights))
	copy(weights, commit.Weights)
	sort.Slice(weights, func(i, j int) bool {
		return weights[i].Worker < weights[j].Worker
	})

	buffer := make([]byte, 0, len(commitTag)+12+12*len(weights))
	buffer = append(buffer, commitTag...)

	var scratch [8]byte
	binary.BigEndian.PutUint32(scratch[:4], commit.SubnetID)
	buffer = append(buffer, scratch[:4]...)
	binary.BigEndian.PutUint64(scratch[:], commit.Timestamp)
	buffer = append(buffer, scratch[:]...)

	for _, w := range weights {
		binary.BigEndian.PutUint32(scratch[:4], w.Worker)
		buffer = append(buffer, scratch[:4]...)
		binary.BigEndian.PutUint64(scratch[:], w.Value)
		buffer = append(buffer, scratch[:]...)
	}

	return buffer
}

// Sign - attach the signing account and signature
func (commit *Commit) Sign(key *account.PrivateKey) {
	digest := sha3.Sum256(commit.Pack())
	commit.Account = key.Account()
	commit.Signature = key.Sign(digest[:])
}

// Verify - check the signature covers the commit content
func (commit *Commit) Verify() error {
	if nil == commit.Account {
		return fault.InvalidSignature
	}
	digest := sha3.Sum256(commit.Pack())
	return commit.Account.CheckSignature(digest[:], commit.Signature)
}
