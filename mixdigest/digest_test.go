// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mixdigest_test

import (
	"testing"

	"github.com/tessera-net/tesserad/mixdigest"
)

// identical inputs must always produce the identical digest
func TestDeterminism(t *testing.T) {

	testData := []struct {
		value string
		nonce uint64
	}{
		{"", 0},
		{"a", 0},
		{"a", 1},
		{"abcdefgh", 12345},
		{"!\"#$%&'()*+,-./", 0xffffffffffffffff},
		{"many bytes beyond the eight significant ones", 99},
	}

	for i, d := range testData {
		first := mixdigest.Digest(d.value, d.nonce)
		second := mixdigest.Digest(d.value, d.nonce)
		if first != second {
			t.Errorf("%d: digest(%q,%d) unstable: %016x != %016x", i, d.value, d.nonce, first, second)
		}
	}
}

// the value is reduced modulo 2^64 so only its trailing eight bytes count
func TestValueReduction(t *testing.T) {

	testData := []struct {
		long  string
		short string
	}{
		{"A123456789", "23456789"},
		{"XYZdeadbeef0", "eadbeef0"},
		{"\x00\x00pqrstuvw", "pqrstuvw"},
	}

	for i, d := range testData {
		for _, nonce := range []uint64{0, 1, 77} {
			longDigest := mixdigest.Digest(d.long, nonce)
			shortDigest := mixdigest.Digest(d.short, nonce)
			if longDigest != shortDigest {
				t.Errorf("%d: digest(%q,%d) = %016x  digest(%q,%d) = %016x",
					i, d.long, nonce, longDigest, d.short, nonce, shortDigest)
			}
		}
	}

	// an empty value reduces to zero, exactly like a single NUL byte
	if mixdigest.Digest("", 5) != mixdigest.Digest("\x00", 5) {
		t.Errorf("empty value does not reduce to zero")
	}
}

// changing the nonce must change the digest
func TestNonceSensitivity(t *testing.T) {
	seen := make(map[uint64]uint64)
	for nonce := uint64(0); nonce < 16; nonce += 1 {
		d := mixdigest.Digest("fixed data", nonce)
		if prior, ok := seen[d]; ok {
			t.Fatalf("digest collision: nonce %d and %d both give %016x", prior, nonce, d)
		}
		seen[d] = nonce
	}
}

// changing the value must change the digest
func TestValueSensitivity(t *testing.T) {
	a := mixdigest.Digest("value-a", 7)
	b := mixdigest.Digest("value-b", 7)
	if a == b {
		t.Errorf("distinct values give identical digest: %016x", a)
	}
}

func BenchmarkDigest(b *testing.B) {
	for i := 0; i < b.N; i += 1 {
		mixdigest.Digest("benchmark", uint64(i))
	}
}
