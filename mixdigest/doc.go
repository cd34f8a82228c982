// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mixdigest - the 64 bit mixing digest underlying every puzzle
//
// a two lane construction: the puzzle data is absorbed into the
// initial vector and the nonce lane produces the digest; each lane
// runs 256 rounds of xor offsets and a cube reduced by a fixed odd
// modulus near 2^64
//
// deterministic across implementations because every operation is
// fixed width 64 bit with silent wraparound; the digest makes no
// cryptographic claim beyond being expensive to search and cheap to
// verify
package mixdigest
