// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coordinator

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/account"
	"github.com/tessera-net/tesserad/background"
	"github.com/tessera-net/tesserad/counter"
	"github.com/tessera-net/tesserad/dispatch"
	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/mode"
	"github.com/tessera-net/tesserad/registry"
	"github.com/tessera-net/tesserad/weight"
	"github.com/tessera-net/tesserad/zmqutil"
)

// coordinator defaults
const (
	DefaultInterval   = 800 * time.Second
	DefaultDifficulty = 16
	DefaultDataLength = 8
)

// Configuration - coordinator daemon configuration
type Configuration struct {
	PublicKey       string                 `gluamapper:"public_key" json:"public_key"`
	PrivateKey      string                 `gluamapper:"private_key" json:"private_key"`
	SigningKey      string                 `gluamapper:"signing_key" json:"signing_key"`
	IntervalSeconds int                    `gluamapper:"interval_seconds" json:"interval_seconds"`
	Difficulty      uint64                 `gluamapper:"difficulty" json:"difficulty"`
	DataLength      int                    `gluamapper:"data_length" json:"data_length"`
	MaximumWeights  int                    `gluamapper:"maximum_weights" json:"maximum_weights"`
	Slots           int                    `gluamapper:"slots" json:"slots"`
	CallSeconds     int                    `gluamapper:"call_seconds" json:"call_seconds"`
	Registry        registry.Configuration `gluamapper:"registry" json:"registry"`
}

// globals for background process
type coordinatorData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	loop looper

	// cumulative totals for the status report
	rounds  counter.Counter
	commits counter.Counter

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData coordinatorData

// Initialise - set up the coordinator round system
//
// an unregistered transport key is fatal here: the subnet ledger
// would refuse every commit, so there is no point starting rounds
func Initialise(configuration *Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("coordinator")
	globalData.log = log
	log.Info("starting…")

	if "" == configuration.PublicKey || "" == configuration.PrivateKey {
		log.Error("both public and private keys must be specified")
		return fault.MissingParameters
	}

	publicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	if nil != err {
		log.Errorf("read error on: %s  error: %s", configuration.PublicKey, err)
		return err
	}
	privateKey, err := zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
	if nil != err {
		log.Errorf("read error on: %s  error: %s", configuration.PrivateKey, err)
		return err
	}

	signingKey, err := account.ReadSigningKeyFile(configuration.SigningKey)
	if nil != err {
		log.Errorf("read error on: %s  error: %s", configuration.SigningKey, err)
		return err
	}
	if signingKey.Test != mode.IsTesting() {
		log.Error("signing key is for the wrong network")
		return fault.WrongNetworkForKey
	}

	reg, err := registry.New(&configuration.Registry)
	if nil != err {
		log.Errorf("registry create error: %s", err)
		return err
	}

	selfKey := hex.EncodeToString(publicKey)
	err = verifyRegistration(reg, selfKey)
	if nil != err {
		log.Criticalf("coordinator key: %s is not registered on the subnet", selfKey)
		return err
	}

	callTimeout := time.Duration(configuration.CallSeconds) * time.Second
	invoker := dispatch.NewZMQ(privateKey, publicKey, mode.NetworkName(), callTimeout)
	engine := dispatch.NewEngine(invoker, configuration.Slots, callTimeout)

	interval := time.Duration(configuration.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = DefaultInterval
	}
	difficulty := configuration.Difficulty
	if 0 == difficulty {
		difficulty = DefaultDifficulty
	}
	dataLength := configuration.DataLength
	if dataLength <= 0 {
		dataLength = DefaultDataLength
	}
	maximum := configuration.MaximumWeights
	if 0 == maximum {
		maximum = weight.DefaultMaximumWeights
	}

	globalData.loop = looper{
		log: logger.New("round-loop"),
		round: &Round{
			log:        log,
			reg:        reg,
			engine:     engine,
			scorer:     weight.BinaryScorer{},
			signingKey: signingKey,
			selfKey:    selfKey,
			difficulty: difficulty,
			dataLength: dataLength,
			maximum:    maximum,
		},
		interval: interval,
	}

	mode.Set(mode.Normal)

	// start background processes
	log.Info("start background…")
	processes := background.Processes{
		&globalData.loop,
	}
	globalData.background = background.Start(processes, log)

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background
	globalData.background.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Counts - cumulative rounds started and commits accepted
func Counts() (uint64, uint64) {
	return globalData.rounds.Uint64(), globalData.commits.Uint64()
}

// the subnet only accepts weight commits from a registered
// coordinator, so an absent key means commits would be rejected
func verifyRegistration(reg registry.Registry, selfKey string) error {
	keys, err := reg.ListWorkerKeys()
	if nil != err {
		return err
	}
	for _, key := range keys {
		if selfKey == key {
			return nil
		}
	}
	return fault.NotRegistered
}
