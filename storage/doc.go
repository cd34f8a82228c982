// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk round archive
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++              = concatenation of byte data
// 3. sequence number = big endian uint64 (8 bytes)
//
// Rounds:
//
//	R ++ sequence number       - archived round
//	                             data: JSON round record
//
// Metadata:
//
//	M ++ "commits"             - number of ledger commits (big endian uint64, 8 bytes)
//	M ++ "last-commit"         - latest ledger commit document
//	                             data: JSON commit including signature
package storage
