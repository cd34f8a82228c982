// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/tessera-net/tesserad/fault"
)

var passwordConsole *terminal.Terminal

func getTerminal() (*terminal.Terminal, int, *terminal.State) {
	oldState, err := terminal.MakeRaw(0)
	if err != nil {
		panic(err)
	}

	if nil != passwordConsole {
		return passwordConsole, 0, oldState
	}

	tmpIO, err := os.OpenFile("/dev/tty", os.O_RDWR, os.ModePerm)
	if nil != err {
		panic("no console")
	}

	passwordConsole = terminal.NewTerminal(tmpIO, "tessera-cli: ")

	return passwordConsole, 0, oldState
}

// ask for a new password, with confirmation
func promptNewPassword() (string, error) {
	console, fd, state := getTerminal()
	password, err := console.ReadPassword("set identity password(length >= 8): ")
	terminal.Restore(fd, state)
	if nil != err {
		return "", err
	}

	if len(password) < 8 {
		return "", fault.PasswordLength
	}

	console, fd, state = getTerminal()
	verifyPassword, err := console.ReadPassword("verify password: ")
	terminal.Restore(fd, state)
	if nil != err {
		return "", fault.PasswordMismatch
	}

	if password != verifyPassword {
		return "", fault.PasswordMismatch
	}

	return password, nil
}

// ask for the password of an existing identity
func promptPassword(name string) (string, error) {
	console, fd, state := getTerminal()
	password, err := console.ReadPassword("password for: " + name + ": ")
	terminal.Restore(fd, state)
	if nil != err {
		return "", err
	}

	return password, nil
}
