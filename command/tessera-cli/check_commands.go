// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/tessera-net/tesserad/account"
	"github.com/tessera-net/tesserad/command/tessera-cli/configuration"
	"github.com/tessera-net/tesserad/fault"
)

// identity is required, but not check the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", fault.IdentityNameIsRequired
	}

	return name, nil
}

// connect is required
func checkConnect(connect string) (string, error) {
	if "" == connect {
		return "", fault.ConnectIsRequired
	}

	return connect, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", fault.DescriptionIsRequired
	}

	return description, nil
}

// signing key is required unless new is set, and always has to
// belong to the configured network
func checkSigningKey(signingKey string, new bool, testnet bool) (string, error) {

	if new && "" == signingKey {
		key, err := account.NewPrivateKey(testnet)
		if nil != err {
			return "", err
		}
		signingKey = key.Seed()
	}

	if "" == signingKey {
		return "", fault.SigningKeyIsRequired
	}

	key, err := account.ParseSigningKey(signingKey)
	if nil != err {
		return "", err
	}
	if testnet != key.Test {
		return "", fault.WrongNetworkForKey
	}

	return signingKey, nil
}

// split a connection string into address and transport key parts
func splitConnect(connect string) (string, []byte, error) {

	s := strings.SplitN(connect, ";", 2)
	if 2 != len(s) || "" == s[0] || "" == s[1] {
		return "", nil, fmt.Errorf("connect: %q expected HOST:PORT;HEXKEY", connect)
	}

	key, err := hex.DecodeString(s[1])
	if nil != err {
		return "", nil, err
	}
	if 32 != len(key) {
		return "", nil, fault.InvalidPublicKey
	}

	return s[0], key, nil
}

// check if a name exists and whether it is a directory
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return s.IsDir(), nil
}

// resolve an identity name to its decrypted private data
//
// the password is taken from the global flag, the agent or an
// interactive prompt in that order
func checkOwnerWithPasswordPrompt(name string, config *configuration.Configuration, c *cli.Context) (string, *configuration.Private, error) {

	if "" == name {
		name = config.DefaultIdentity
	}

	var err error

	agent := c.GlobalString("use-agent")
	clearCache := c.GlobalBool("zero-agent-cache")
	password := c.GlobalString("password")

	if "" != agent {
		password, err = passwordFromAgent(name, "decrypt the signing key", agent, clearCache)
		if nil != err {
			return "", nil, err
		}
	} else if "" == password {
		password, err = promptPassword(name)
		if nil != err {
			return "", nil, err
		}
	}

	owner, err := config.Private(password, name)
	if nil != err {
		return "", nil, err
	}
	return name, owner, nil
}
