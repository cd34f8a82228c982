// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package solver - nonce search engines for proof of work puzzles
//
// two engines are provided: a sequential scan that always returns
// the smallest valid nonce and a batch engine that splits fixed
// nonce ranges across parallel execution units.  both engines test
// candidates with the same digest the validator uses, so any nonce
// they return verifies.
package solver
