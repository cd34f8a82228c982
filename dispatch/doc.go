// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dispatch - bounded delivery of puzzle assignments
//
// the engine fans jobs out to a fixed number of slots and applies a
// per call deadline, so a slow or broken worker forfeits only its
// own entry in the round.  transport is pluggable through the
// Invoker interface; the production implementation speaks encrypted
// ZeroMQ REQ/REP with one fresh socket per call.
package dispatch
