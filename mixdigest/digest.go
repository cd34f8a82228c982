// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mixdigest

// mixing parameters, fixed for every implementation of this digest
const (
	mixRounds = 256

	offsetK uint64 = 3472328296227680304
	offsetC uint64 = 8241990170776528228
	modQ    uint64 = 18446744073709551557
)

// Digest - compute the 64 bit mixing digest of a value and a nonce
//
// the value lane contributes only through the initial vector: its mix
// result is folded into iv and the returned digest is the mix of the
// nonce lane alone
func Digest(value string, nonce uint64) uint64 {

	iv := ^uint64(0)

	h := mix(valueNumber(value), iv)
	iv ^= h

	return mix(nonce, iv)
}

// the UTF-8 bytes of the value interpreted as a big endian unsigned
// integer reduced modulo 2^64, so only the trailing eight bytes of a
// long value are significant
func valueNumber(value string) uint64 {
	v := uint64(0)
	for i := 0; i < len(value); i += 1 {
		v = v<<8 | uint64(value[i])
	}
	return v
}

// one lane of the digest
//
// all arithmetic is unsigned 64 bit with silent wraparound, the cube
// wraps before the modulus is applied
func mix(x uint64, iv uint64) uint64 {
	x ^= iv
	for i := 0; i < mixRounds; i += 1 {
		x ^= offsetK
		x ^= offsetC
		x = x * x * x % modQ
	}
	return x
}
