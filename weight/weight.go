// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package weight

import (
	"sort"

	"github.com/tessera-net/tesserad/dispatch"
)

// DefaultMaximumWeights - vector size cut applied when not configured
const DefaultMaximumWeights = 400

// Entry - one worker's tallied score
type Entry struct {
	Worker uint32  `json:"worker"`
	Score  float64 `json:"score"`
}

// Weight - one worker's share of the committed vector
type Weight struct {
	Worker uint32 `json:"worker"`
	Value  uint64 `json:"value"`
}

// Tally - score every response and order the entries by worker id
//
// ordering ahead of the ranking sort keeps equal scores in worker id
// order all the way to the committed vector
func Tally(responses []dispatch.Response, scorer Scorer) []Entry {
	entries := make([]Entry, 0, len(responses))
	for _, response := range responses {
		entries = append(entries, Entry{
			Worker: response.Worker,
			Score:  scorer.Score(response),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Worker < entries[j].Worker
	})
	return entries
}

// Compact - convert tallied scores to the normalised weight vector
//
// the entries are ranked by descending score, cut to at most limit
// workers and scaled so the kept scores share one thousand units in
// proportion.  scaling truncates, so the units can sum to slightly
// under one thousand.  zero weights are dropped and a zero score sum
// yields an empty vector.  a limit of zero or less keeps all entries.
func Compact(entries []Entry, limit int) []Weight {

	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	sum := 0.0
	for _, entry := range ranked {
		sum += entry.Score
	}
	if 0 == sum {
		return nil
	}

	weights := make([]Weight, 0, len(ranked))
	for _, entry := range ranked {
		value := uint64(entry.Score * 1000 / sum)
		if 0 == value {
			continue
		}
		weights = append(weights, Weight{
			Worker: entry.Worker,
			Value:  value,
		})
	}
	return weights
}
