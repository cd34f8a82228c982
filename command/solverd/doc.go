// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Worker daemon for the tessera system
//
// This program listens for puzzles sent by a subnet coordinator and
// determines a nonce whose mixing digest meets the requested
// difficulty value.  The configuration file is watched and solver
// settings are applied without a restart.
package main
