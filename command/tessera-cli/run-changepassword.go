// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

// re-encrypt an identity's signing key under a new password
func runChangePassword(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, owner, err := checkOwnerWithPasswordPrompt(c.GlobalString("identity"), m.config, c)
	if nil != err {
		return err
	}

	// prompt new password and confirm for signing key encryption
	newPassword, err := promptNewPassword()
	if nil != err {
		return err
	}

	delete(m.config.Identities, name)

	err = m.config.AddIdentity(name, owner.Description, owner.Seed, newPassword)
	if nil != err {
		return err
	}

	m.save = true
	return nil
}
