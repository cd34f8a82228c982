// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package weight

import (
	"github.com/tessera-net/tesserad/dispatch"
)

// Scorer - judge a worker's reply on a zero to one scale
//
// a zero score marks the reply as worthless and the worker is left
// out of the committed vector
type Scorer interface {
	Score(response dispatch.Response) float64
}

// BinaryScorer - full marks for a verifying solution, nothing otherwise
type BinaryScorer struct{}

// Score - one when the solution digest meets its target, zero when not
func (BinaryScorer) Score(response dispatch.Response) float64 {
	ok, err := response.Solution.Verify()
	if nil != err || !ok {
		return 0.0
	}
	return 1.0
}
