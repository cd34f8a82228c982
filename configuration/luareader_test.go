// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tessera-net/tesserad/configuration"
	"github.com/tessera-net/tesserad/fault"
)

type testConfiguration struct {
	Network string        `gluamapper:"network" json:"network"`
	Round   roundSection  `gluamapper:"round" json:"round"`
	Listen  []string      `gluamapper:"listen" json:"listen"`
	Logging logSection    `gluamapper:"logging" json:"logging"`
	Workers []workerEntry `gluamapper:"workers" json:"workers"`
}

type roundSection struct {
	Interval    int `gluamapper:"interval" json:"interval"`
	Difficulty  int `gluamapper:"difficulty" json:"difficulty"`
	CallTimeout int `gluamapper:"call_timeout" json:"call_timeout"`
}

type logSection struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Console   bool   `gluamapper:"console" json:"console"`
}

type workerEntry struct {
	ID        int    `gluamapper:"id" json:"id"`
	Address   string `gluamapper:"address" json:"address"`
	PublicKey string `gluamapper:"public_key" json:"public_key"`
}

const sampleConfiguration = `
local M = {}

M.network = "local"

M.round = {
    interval = 120,
    difficulty = 12,
    call_timeout = 30,
}

M.listen = {
    "127.0.0.1:2130",
    "[::1]:2130",
}

M.logging = {
    directory = "log",
    console = true,
}

M.workers = {
    { id = 1, address = "127.0.0.1:2136", public_key = "00" },
    { id = 2, address = "127.0.0.1:2137", public_key = "01" },
}

return M
`

func writeTempConfiguration(t *testing.T, text string) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "configuration-test")
	if nil != err {
		t.Fatalf("cannot create directory: %s", err)
	}

	fileName := filepath.Join(dir, "test.conf")
	err = ioutil.WriteFile(fileName, []byte(text), 0600)
	if nil != err {
		os.RemoveAll(dir)
		t.Fatalf("cannot write configuration: %s", err)
	}
	return fileName, func() { os.RemoveAll(dir) }
}

func TestParseConfigurationFile(t *testing.T) {
	fileName, teardown := writeTempConfiguration(t, sampleConfiguration)
	defer teardown()

	var cfg testConfiguration
	err := configuration.ParseConfigurationFile(fileName, &cfg)
	assert.NoError(t, err, "parse error")

	assert.Equal(t, "local", cfg.Network, "wrong network")
	assert.Equal(t, 120, cfg.Round.Interval, "wrong interval")
	assert.Equal(t, 12, cfg.Round.Difficulty, "wrong difficulty")
	assert.Equal(t, 30, cfg.Round.CallTimeout, "wrong call timeout")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, cfg.Listen, "wrong listen list")
	assert.Equal(t, "log", cfg.Logging.Directory, "wrong log directory")
	assert.True(t, cfg.Logging.Console, "wrong console flag")
	assert.Len(t, cfg.Workers, 2, "wrong worker count")
	assert.Equal(t, 2, cfg.Workers[1].ID, "wrong worker id")
	assert.Equal(t, "127.0.0.1:2137", cfg.Workers[1].Address, "wrong worker address")
}

func TestParseConfigurationFileNotTable(t *testing.T) {
	fileName, teardown := writeTempConfiguration(t, `return 42`)
	defer teardown()

	var cfg testConfiguration
	err := configuration.ParseConfigurationFile(fileName, &cfg)
	assert.Equal(t, fault.InvalidConfiguration, err, "wrong error")
}

func TestParseConfigurationFileMissing(t *testing.T) {
	var cfg testConfiguration
	err := configuration.ParseConfigurationFile("/nonexistent/no.conf", &cfg)
	assert.Error(t, err, "expected an error")
}
