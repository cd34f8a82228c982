// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/hex"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/util"
)

// length of a transport public key
const transportKeyLength = 32

// Worker - one registered solver endpoint as the source reports it
type Worker struct {
	UID       uint32   `json:"uid"`
	Addresses []string `json:"addresses"`
	Key       string   `json:"key"` // hex transport public key
}

// Registry - the worker directory and commit ledger of one subnet
type Registry interface {
	SubnetID() (uint32, error)
	ListWorkers() ([]Worker, error)
	ListWorkerKeys() ([]string, error)
	CommitWeights(commit *Commit) error
}

// Configuration - registry source selection from the configuration file
type Configuration struct {
	Source    string         `gluamapper:"source" json:"source"`
	Chain     ChainAccess    `gluamapper:"chain" json:"chain"`
	Domain    string         `gluamapper:"domain" json:"domain"`
	SubnetID  uint32         `gluamapper:"subnet_id" json:"subnet_id"`
	Workers   []StaticWorker `gluamapper:"workers" json:"workers"`
	ExtraKeys []string       `gluamapper:"extra_keys" json:"extra_keys"`
}

// New - create the registry source named by the configuration
//
// an empty source selects the chain
func New(configuration *Configuration) (Registry, error) {
	switch configuration.Source {
	case "", "chain":
		return NewChain(configuration.Chain)
	case "dns":
		return NewDomain(configuration.Domain, configuration.SubnetID, nil)
	case "static":
		return NewStatic(configuration.SubnetID, configuration.Workers, configuration.ExtraKeys), nil
	default:
		return nil, fault.InvalidConfiguration
	}
}

// Candidate - a worker endpoint ready for dispatch this round
type Candidate struct {
	UID     uint32
	Address *util.Connection
	Key     []byte
}

// Snapshot - resolve the current worker set into dispatchable candidates
//
// a malformed entry is logged and skipped, never allowed to abort
// the round.  duplicate uids keep only their first entry so one
// worker can never earn two tally slots.
func Snapshot(r Registry, log *logger.L) ([]Candidate, error) {

	workers, err := r.ListWorkers()
	if nil != err {
		return nil, err
	}

	seen := make(map[uint32]struct{}, len(workers))
	candidates := make([]Candidate, 0, len(workers))

loop:
	for _, worker := range workers {

		if _, ok := seen[worker.UID]; ok {
			log.Warnf("worker: %d  duplicate entry ignored", worker.UID)
			continue loop
		}

		key, err := hex.DecodeString(worker.Key)
		if nil != err || transportKeyLength != len(key) {
			log.Warnf("worker: %d  invalid key: %q", worker.UID, worker.Key)
			continue loop
		}

		for _, address := range worker.Addresses {
			conn, err := util.NewConnection(address)
			if nil != err {
				log.Warnf("worker: %d  invalid address: %q  error: %s", worker.UID, address, err)
				continue
			}
			seen[worker.UID] = struct{}{}
			candidates = append(candidates, Candidate{
				UID:     worker.UID,
				Address: conn,
				Key:     key,
			})
			continue loop
		}

		log.Warnf("worker: %d  no usable address", worker.UID)
	}

	return candidates, nil
}
