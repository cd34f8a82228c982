// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/tessera-net/tesserad/fault"
)

// enumeration of supported key algorithms
const (
	ED25519 = iota + 1
	// end of list (one greater than last item)
	algorithmLimit = iota + 1
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Account - the public identity of a commit signing key
type Account struct {
	Test      bool
	PublicKey []byte
}

// AccountFromBase58 - convert a Base58 encoded string to an account
//
// the checksum is verified so a mistyped account string is detected
// here rather than by a failed signature later
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err {
		return nil, fault.InvalidPublicKey
	}
	return AccountFromBytes(accountDecoded)
}

// AccountFromBytes - convert a checksummed binary encoding to an account
func AccountFromBytes(accountBytes []byte) (*Account, error) {
	if len(accountBytes) <= 1+checksumLength {
		return nil, fault.InvalidKeyLength
	}

	keyVariant := accountBytes[0]
	if publicKeyCode != keyVariant&publicKeyCode {
		return nil, fault.InvalidPublicKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if keyAlgorithm < ED25519 || keyAlgorithm >= algorithmLimit {
		return nil, fault.InvalidPublicKey
	}

	isTest := 0 != keyVariant&testKeyCode

	checksumStart := len(accountBytes) - checksumLength
	checksum := sha3.Sum256(accountBytes[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountBytes[checksumStart:]) {
		return nil, fault.InvalidPublicKey
	}

	publicKey := accountBytes[1:checksumStart]
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.InvalidKeyLength
	}

	return &Account{
		Test:      isTest,
		PublicKey: publicKey,
	}, nil
}

// CheckSignature - verify the signature of a message
func (account *Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(account.PublicKey), message, signature) {
		return fault.InvalidSignature
	}
	return nil
}

// Bytes - the checksummed binary encoding of the account
func (account *Account) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	if account.Test {
		keyVariant |= testKeyCode
	}
	buffer := append([]byte{keyVariant}, account.PublicKey...)
	checksum := sha3.Sum256(buffer)
	return append(buffer, checksum[:checksumLength]...)
}

// String - the Base58 display form of the account
func (account *Account) String() string {
	return base58.Encode(account.Bytes())
}

// MarshalText - convert an account to its Base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert the Base58 JSON form back to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.Test = a.Test
	account.PublicKey = a.PublicKey
	return nil
}

// IsTesting - whether the account belongs to a test subnet
func (account *Account) IsTesting() bool {
	return account.Test
}
