// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coordinator

import (
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/account"
	"github.com/tessera-net/tesserad/dispatch"
	"github.com/tessera-net/tesserad/puzzle"
	"github.com/tessera-net/tesserad/registry"
	"github.com/tessera-net/tesserad/storage"
	"github.com/tessera-net/tesserad/weight"
)

// Round - one pass of puzzle issue, collection and commit
type Round struct {
	log        *logger.L
	reg        registry.Registry
	engine     *dispatch.Engine
	scorer     weight.Scorer
	signingKey *account.PrivateKey
	selfKey    string // hex transport public key
	difficulty uint64
	dataLength int
	maximum    int
}

// Execute - run one verification round over the registered workers
//
// a failed commit is the only error; anything the workers do wrong
// just lowers their score.  the round record is archived regardless
// of how the round went.
func (round *Round) Execute() error {

	globalData.rounds.Increment()
	start := time.Now()
	log := round.log

	// losing the registration means the ledger will refuse the
	// commit, so skip the round rather than waste a puzzle cycle
	err := verifyRegistration(round.reg, round.selfKey)
	if nil != err {
		log.Warnf("skipping round: %s", err)
		return err
	}

	subnetID, err := round.reg.SubnetID()
	if nil != err {
		log.Warnf("subnet id error: %s", err)
		return err
	}

	candidates, err := registry.Snapshot(round.reg, log)
	if nil != err {
		log.Warnf("worker list error: %s", err)
		return err
	}

	// one ad hoc puzzle per round, fanned out to every worker
	p, err := puzzle.Random(round.dataLength, round.difficulty)
	if nil != err {
		log.Errorf("puzzle generation error: %s", err)
		return err
	}

	jobs := round.assign(p, candidates)
	log.Infof("subnet: %d  workers: %d  puzzle: %q  difficulty: %d", subnetID, len(jobs), p.Data, round.difficulty)

	responses := round.engine.Dispatch(jobs)

	entries := weight.Tally(responses, round.scorer)
	valid := 0
	for _, entry := range entries {
		if entry.Score > 0 {
			valid += 1
		}
	}
	vector := weight.Compact(entries, round.maximum)

	log.Infof("polled: %d  answered: %d  valid: %d", len(jobs), len(responses), valid)

	committed := false
	var commitErr error

	if 0 == len(vector) {
		log.Warn("empty weight vector, nothing to commit")
	} else {
		commit := &registry.Commit{
			SubnetID:  subnetID,
			Timestamp: uint64(time.Now().Unix()),
			Weights:   vector,
		}
		commit.Sign(round.signingKey)

		err = round.reg.CommitWeights(commit)
		if nil != err {
			log.Errorf("commit error: %s", err)
			commitErr = err
		} else {
			committed = true
			globalData.commits.Increment()
			archiveCommit(log, commit)
		}
	}

	archiveRound(log, &storage.Record{
		Timestamp:  start,
		Data:       p.Data,
		Difficulty: round.difficulty,
		Polled:     len(jobs),
		Answered:   len(responses),
		Valid:      valid,
		Weights:    vector,
		Committed:  committed,
		Elapsed:    uint64(time.Since(start) / time.Millisecond),
	})

	return commitErr
}

// assign the round's puzzle to every worker
//
// the coordinator can appear in its own worker list; it never
// assigns a puzzle to itself
func (round *Round) assign(p puzzle.Puzzle, candidates []registry.Candidate) []dispatch.Job {
	jobs := make([]dispatch.Job, 0, len(candidates))
	for _, candidate := range candidates {
		if round.selfKey == hex.EncodeToString(candidate.Key) {
			continue
		}
		jobs = append(jobs, dispatch.Job{
			Worker:  candidate.UID,
			Address: candidate.Address,
			Key:     candidate.Key,
			Puzzle:  p,
		})
	}
	return jobs
}

// the archive is optional, a coordinator without one still commits
func archiveRound(log *logger.L, record *storage.Record) {
	if !storage.IsAvailable() {
		return
	}
	sequence, err := storage.PutRound(record)
	if nil != err {
		log.Errorf("archive error: %s", err)
		return
	}
	log.Infof("archived round: %d", sequence)
}

func archiveCommit(log *logger.L, commit *registry.Commit) {
	if !storage.IsAvailable() {
		return
	}
	data, err := json.Marshal(commit)
	if nil != err {
		log.Errorf("commit marshal error: %s", err)
		return
	}
	err = storage.SaveCommit(data)
	if nil != err {
		log.Errorf("commit archive error: %s", err)
	}
}
