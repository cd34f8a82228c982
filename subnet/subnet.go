// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package subnet

// names of all networks
const (
	Tessera = "tessera"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a network name
func Valid(name string) bool {
	switch name {
	case Tessera, Testing, Local:
		return true
	default:
		return false
	}
}

// IsTesting - true for networks that must never carry live weight
func IsTesting(name string) bool {
	return Tessera != name
}
