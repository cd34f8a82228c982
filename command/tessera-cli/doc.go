// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Operator tool for the tessera system
//
// Keeps signing keys encrypted in a per network configuration file,
// generates key material, runs the mixing digest and solvers locally
// and queries running workers.
//
// The configuration is stored as:
//
//	${XDG_CONFIG_HOME}/tessera-cli/<network>-tessera-cli.json
package main
