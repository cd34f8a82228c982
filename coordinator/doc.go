// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coordinator - periodic worker verification rounds
//
// each round takes a snapshot of the registered workers, sends every
// one a freshly generated puzzle over an encrypted channel, scores
// the replies and commits the resulting weight vector to the subnet
// ledger under the coordinator's signing key
//
// rounds run on a fixed cadence; a round that produces no valid
// replies is archived but nothing is committed
package coordinator
