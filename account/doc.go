// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ed25519 identities for signing weight commits
//
// the display form of an account is the Base58 encoding of a key
// variant byte, the public key and a four byte SHA3-256 checksum.
// test subnet accounts carry a marker bit in the variant byte so
// they can never be mistaken for live ones.
package account
