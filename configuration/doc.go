// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - handle the conversion of Lua configuration
// files into tagged Go structures
//
// daemons keep their own configuration structure definitions next to
// their main and only share the execution and mapping machinery here
package configuration
