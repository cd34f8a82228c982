// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/hex"
	"io/ioutil"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/util"
)

const (
	taggedSigning = "SIGNING:"
	taggedTest    = "TEST:"
)

// PrivateKey - an ed25519 commit signing key
type PrivateKey struct {
	Test       bool
	PrivateKey []byte
}

// NewPrivateKey - generate a fresh signing key
func NewPrivateKey(test bool) (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{
		Test:       test,
		PrivateKey: priv,
	}, nil
}

// Sign - produce a detached signature over a message
func (key *PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(ed25519.PrivateKey(key.PrivateKey), message))
}

// Account - the public identity derived from the signing key
func (key *PrivateKey) Account() *Account {
	return &Account{
		Test:      key.Test,
		PublicKey: key.PrivateKey[ed25519.PublicKeySize:],
	}
}

// Seed - the tagged hex seed form of the signing key
func (key *PrivateKey) Seed() string {
	tag := taggedSigning
	if key.Test {
		tag = taggedTest + taggedSigning
	}
	return tag + hex.EncodeToString(key.PrivateKey[:ed25519.SeedSize])
}

// MarshalText - serialise a signing key in its tagged seed form
func (key PrivateKey) MarshalText() ([]byte, error) {
	return []byte(key.Seed()), nil
}

// UnmarshalText - restore a signing key from its tagged seed form
func (key *PrivateKey) UnmarshalText(s []byte) error {
	k, err := ParseSigningKey(string(s))
	if nil != err {
		return err
	}
	key.Test = k.Test
	key.PrivateKey = k.PrivateKey
	return nil
}

// MakeSigningKeyFile - generate a signing key and store it as tagged hex
//
// refuses to overwrite an existing file
func MakeSigningKeyFile(fileName string, test bool) (*PrivateKey, error) {
	if util.EnsureFileExists(fileName) {
		return nil, fault.KeyFileAlreadyExists
	}

	key, err := NewPrivateKey(test)
	if nil != err {
		return nil, err
	}

	data := key.Seed() + "\n"
	err = ioutil.WriteFile(fileName, []byte(data), 0600)
	if nil != err {
		return nil, err
	}

	return key, nil
}

// ReadSigningKeyFile - load a signing key from its tagged hex file
func ReadSigningKeyFile(fileName string) (*PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, fault.KeyFileNotFound
	}
	return ParseSigningKey(string(data))
}

// ParseSigningKey - decode the tagged hex seed form of a signing key
func ParseSigningKey(data string) (*PrivateKey, error) {
	s := strings.TrimSpace(data)

	test := false
	if strings.HasPrefix(s, taggedTest) {
		test = true
		s = s[len(taggedTest):]
	}
	if !strings.HasPrefix(s, taggedSigning) {
		return nil, fault.InvalidKeyFile
	}

	seed, err := hex.DecodeString(s[len(taggedSigning):])
	if nil != err {
		return nil, fault.InvalidKeyFile
	}
	if ed25519.SeedSize != len(seed) {
		return nil, fault.InvalidKeyLength
	}

	return &PrivateKey{
		Test:       test,
		PrivateKey: ed25519.NewKeyFromSeed(seed),
	}, nil
}
