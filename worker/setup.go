// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package worker

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/background"
	"github.com/tessera-net/tesserad/counter"
	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/mode"
	"github.com/tessera-net/tesserad/puzzle"
	"github.com/tessera-net/tesserad/solver"
	"github.com/tessera-net/tesserad/util"
	"github.com/tessera-net/tesserad/zmqutil"
)

// worker defaults
const (
	DefaultRequestRate   = 10 // puzzle requests per second
	DefaultRequestBurst  = 20
	DefaultReplaySeconds = 300 // how long a solved answer stays replayable

	warmupDataLength = 8
)

// Configuration - worker daemon configuration
//
// announce carries the public addresses placed in the DNS TXT record,
// it is only read by the dns-txt command
type Configuration struct {
	Listen        []string `gluamapper:"listen" json:"listen"`
	Announce      []string `gluamapper:"announce" json:"announce"`
	PublicKey     string   `gluamapper:"public_key" json:"public_key"`
	PrivateKey    string   `gluamapper:"private_key" json:"private_key"`
	Engine        string   `gluamapper:"engine" json:"engine"`
	BatchSize     uint64   `gluamapper:"batch_size" json:"batch_size"`
	Units         int      `gluamapper:"units" json:"units"`
	RequestRate   float64  `gluamapper:"request_rate" json:"request_rate"`
	RequestBurst  int      `gluamapper:"request_burst" json:"request_burst"`
	ReplaySeconds int      `gluamapper:"replay_seconds" json:"replay_seconds"`
}

// globals for background process
type workerData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	lstn listener

	engine    solver.Solver
	limiter   *rate.Limiter
	answers   *gocache.Cache
	replayTTL time.Duration
	network   string

	// for change detection on reload
	listen     []string
	publicKey  string
	privateKey string

	// counters for the info reply
	requests counter.Counter
	replays  counter.Counter
	solved   counter.Counter
	attempts counter.Counter

	startTime time.Time

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData workerData

// Initialise - set up the worker processing system
func Initialise(configuration *Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("worker")
	globalData.log = log
	log.Info("starting…")

	if 0 == len(configuration.Listen) {
		log.Error("missing listen addresses")
		return fault.MissingParameters
	}
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

	listen, err := util.NewConnections(configuration.Listen)
	if nil != err {
		log.Errorf("listen addresses error: %s", err)
		return err
	}

	engine, err := solver.New(configuration.Engine, configuration.BatchSize, configuration.Units, &globalData.attempts)
	if nil != err {
		log.Errorf("solver create error: %s", err)
		return err
	}
	globalData.engine = engine

	globalData.limiter = rate.NewLimiter(requestRate(configuration), requestBurst(configuration))
	globalData.replayTTL = replayTTL(configuration)
	globalData.answers = gocache.New(globalData.replayTTL, globalData.replayTTL)
	globalData.network = mode.NetworkName()
	globalData.listen = configuration.Listen
	globalData.publicKey = configuration.PublicKey
	globalData.privateKey = configuration.PrivateKey
	globalData.startTime = time.Now()

	// prime the engine before accepting any requests
	warmup, err := puzzle.Random(warmupDataLength, puzzle.MinimumDifficulty)
	if nil != err {
		return err
	}
	start := time.Now()
	nonce := engine.Solve(warmup)
	log.Infof("warmup: %s  nonce: %d  elapsed: %v", engine.Name(), nonce, time.Since(start))
	mode.Set(mode.Normal)

	err = globalData.lstn.initialise(privateKey, publicKey, listen)
	if nil != err {
		return err
	}

	// start background processes
	log.Info("start background…")
	processes := background.Processes{
		&globalData.lstn,
	}
	globalData.background = background.Start(processes, log)

	// all data initialised
	globalData.initialised = true

	return nil
}

// Reconfigure - apply a changed configuration to a running worker
//
// solver sizing, rate limit and replay lifetime take effect at once;
// identity keys and listen addresses require a restart
func Reconfigure(configuration *Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	log := globalData.log

	if !sameAddresses(globalData.listen, configuration.Listen) ||
		globalData.publicKey != configuration.PublicKey ||
		globalData.privateKey != configuration.PrivateKey {
		log.Warn("identity key and listen address changes require a restart")
	}

	engine, err := solver.New(configuration.Engine, configuration.BatchSize, configuration.Units, &globalData.attempts)
	if nil != err {
		log.Errorf("solver create error: %s", err)
		return err
	}
	globalData.engine = engine

	globalData.limiter.SetLimit(requestRate(configuration))
	globalData.limiter.SetBurst(requestBurst(configuration))
	globalData.replayTTL = replayTTL(configuration)

	log.Infof("reconfigured: engine: %s  rate: %v/%d  replay: %v",
		engine.Name(), globalData.limiter.Limit(), globalData.limiter.Burst(), globalData.replayTTL)

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

func requestRate(configuration *Configuration) rate.Limit {
	if configuration.RequestRate <= 0 {
		return rate.Limit(DefaultRequestRate)
	}
	return rate.Limit(configuration.RequestRate)
}

func requestBurst(configuration *Configuration) int {
	if configuration.RequestBurst <= 0 {
		return DefaultRequestBurst
	}
	return configuration.RequestBurst
}

func replayTTL(configuration *Configuration) time.Duration {
	if configuration.ReplaySeconds <= 0 {
		return DefaultReplaySeconds * time.Second
	}
	return time.Duration(configuration.ReplaySeconds) * time.Second
}

func sameAddresses(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, address := range a {
		if address != b[i] {
			return false
		}
	}
	return true
}
