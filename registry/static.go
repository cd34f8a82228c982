// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/logger"
)

// StaticWorker - one worker entry from the configuration file
type StaticWorker struct {
	UID       uint32 `gluamapper:"uid" json:"uid"`
	Address   string `gluamapper:"address" json:"address"`
	PublicKey string `gluamapper:"public_key" json:"public_key"`
}

// static - Registry fixed by the configuration file
//
// for the local network and tests; commits only log
type static struct {
	log      *logger.L
	subnetID uint32
	workers  []Worker
	keys     []string
}

// NewStatic - create a configuration backed registry source
//
// extraKeys carries identity keys that are registered on the subnet
// without being dispatchable workers, the coordinator's own key in
// particular
func NewStatic(subnetID uint32, staticWorkers []StaticWorker, extraKeys []string) Registry {

	workers := make([]Worker, 0, len(staticWorkers))
	keys := make([]string, 0, len(staticWorkers)+len(extraKeys))
	for _, w := range staticWorkers {
		workers = append(workers, Worker{
			UID:       w.UID,
			Addresses: []string{w.Address},
			Key:       w.PublicKey,
		})
		keys = append(keys, w.PublicKey)
	}
	keys = append(keys, extraKeys...)

	return &static{
		log:      logger.New("registry-static"),
		subnetID: subnetID,
		workers:  workers,
		keys:     keys,
	}
}

func (s *static) SubnetID() (uint32, error) {
	return s.subnetID, nil
}

func (s *static) ListWorkers() ([]Worker, error) {
	return s.workers, nil
}

func (s *static) ListWorkerKeys() ([]string, error) {
	return s.keys, nil
}

func (s *static) CommitWeights(commit *Commit) error {
	s.log.Infof("static source, commit only logged: subnet: %d  timestamp: %d  weights: %v",
		commit.SubnetID, commit.Timestamp, commit.Weights)
	return nil
}
