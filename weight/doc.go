// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package weight - turn round responses into a committed weight vector
//
// responses are scored, tallied in worker id order and compacted
// into an integer vector where the kept workers share one thousand
// units in proportion to their scores.  the compacted vector is in
// rank order; the ledger commit applies its own canonical ordering.
package weight
