// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - worker directory and weight commit ledger
//
// three interchangeable sources provide the Registry interface: a
// subnet chain node spoken to over JSON-RPC, DNS TXT records for
// bootstrap and development, and a fixed list from the
// configuration file.  Snapshot turns whichever source is active
// into the screened candidate list a round dispatches to.
package registry
