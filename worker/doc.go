// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package worker - the puzzle serving side of the network
//
// binds encrypted REP sockets and answers coordinator requests:
//
//	P: solve a puzzle with the locally configured engine
//	I: report version, engine and counters
//
// requests are rate limited and solved answers are kept for a
// configurable lifetime so a coordinator retry does not trigger a
// second search
package worker
