// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"strings"
	"testing"
)

// a plausible signing key value, long enough for the cipher bounds
const plainText = "TEST:SIGNING:52cca1569c31e9f5a1e2c9e0b8e475a9cebe9c8a7b6d5e4f3a2b1c0d9e8f7a6b"

// test encrypt and decrypt one string with various passwords
func TestEncryptDecrypt(t *testing.T) {

	passwords := []string{"test", "123", "444", "m,erRGhtk%$33ug62sd al/fajfb.adv"}

	for _, password := range passwords {
		salt, key, err := hashPassword(password)
		if nil != err {
			t.Fatalf("hash error: %s", err)
		}

		encrypted, err := encryptData(plainText, key)
		if nil != err {
			t.Fatalf("encrypt error: %s", err)
		}

		key2, err := generateKey(password, salt)
		if nil != err {
			t.Fatalf("generateKey error: %s", err)
		}

		decrypted, err := decryptData(encrypted, key2)
		if nil != err {
			t.Fatalf("decrypt error: %s", err)
		}

		if decrypted != plainText {
			t.Errorf("decrypt: actual:   %s", decrypted)
			t.Errorf("decrypt: expected: %s", plainText)
		}
	}
}

// encrypting twice with one key must never produce the same
// ciphertext, otherwise nonce generation is broken
func TestEncryptionIsNotDeterministic(t *testing.T) {

	_, key, err := hashPassword("some password")
	if nil != err {
		t.Fatalf("hash error: %s", err)
	}

	first, err := encryptData(plainText, key)
	if nil != err {
		t.Fatalf("encrypt error: %s", err)
	}

	second, err := encryptData(plainText, key)
	if nil != err {
		t.Fatalf("encrypt error: %s", err)
	}

	if first == second {
		t.Errorf("encryption produced duplicate result - must never happen")
		t.Errorf("first:  %s", first)
		t.Errorf("second: %s", second)
	}

	for i, ciphertext := range []string{first, second} {
		decrypted, err := decryptData(ciphertext, key)
		if nil != err {
			t.Fatalf("%d: decrypt error: %s", i, err)
		}
		if decrypted != plainText {
			t.Errorf("%d: plaintext actual:   %s", i, decrypted)
			t.Errorf("%d: plaintext expected: %s", i, plainText)
		}
	}
}

// a key derived from a different password must fail to open the box
func TestDecryptWithWrongPassword(t *testing.T) {

	salt, key, err := hashPassword("correct password")
	if nil != err {
		t.Fatalf("hash error: %s", err)
	}

	encrypted, err := encryptData(plainText, key)
	if nil != err {
		t.Fatalf("encrypt error: %s", err)
	}

	badKey, err := generateKey("A Bad Password", salt)
	if nil != err {
		t.Fatalf("generateKey error: %s", err)
	}

	_, err = decryptData(encrypted, badKey)
	if nil == err {
		t.Errorf("unexpected decryption success")
	}
}

// out of range plaintext sizes are rejected before encryption
func TestEncryptDataLimits(t *testing.T) {

	_, key, err := hashPassword("limits")
	if nil != err {
		t.Fatalf("hash error: %s", err)
	}

	_, err = encryptData("too short", key)
	if nil == err {
		t.Errorf("unexpected success for short data")
	}

	_, err = encryptData(strings.Repeat("x", 16384), key)
	if nil == err {
		t.Errorf("unexpected success for oversize data")
	}

	_, err = decryptData("", key)
	if nil == err {
		t.Errorf("unexpected success for empty ciphertext")
	}
}
