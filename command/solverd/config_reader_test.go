// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/fixtures"
	"github.com/tessera-net/tesserad/worker"
)

const testConfigurationFile = `-- solverd.conf
local M = {}

M.data_directory = "."
M.subnet = "local"

M.worker = {
    listen = { "127.0.0.1:3130" },
    announce = { "127.0.0.1:3130" },
    engine = "batch",
    batch_size = 1024,
    request_rate = 15,
}

M.logging = {
    size = 65536,
    count = 5,
}

return M
`

func writeTestConfiguration(t *testing.T) (string, func()) {
	directory, err := ioutil.TempDir("", "solverd-config")
	require.NoError(t, err)

	fileName := filepath.Join(directory, "solverd.conf")
	err = ioutil.WriteFile(fileName, []byte(testConfigurationFile), 0600)
	require.NoError(t, err)

	return fileName, func() { os.RemoveAll(directory) }
}

func TestGetConfigBeforeRefresh(t *testing.T) {
	reader := &ConfigReaderData{}

	configuration, err := reader.GetConfig()
	assert.Error(t, err, "missing configuration must be reported")
	assert.Nil(t, configuration)
}

func TestGetConfigAfterUpdate(t *testing.T) {
	reader := &ConfigReaderData{}

	newConfiguration := &Configuration{Subnet: "local"}
	reader.update(newConfiguration)

	configuration, err := reader.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, newConfiguration, configuration)
}

func TestFirstRefreshReadsConfiguration(t *testing.T) {
	fileName, cleanup := writeTestConfiguration(t)
	defer cleanup()

	reader := &ConfigReaderData{refreshDelay: time.Millisecond}
	err := reader.FirstRefresh(fileName)
	require.NoError(t, err)

	configuration, err := reader.GetConfig()
	require.NoError(t, err)

	directory := filepath.Dir(fileName)
	assert.Equal(t, "local", configuration.Subnet)
	assert.Equal(t, directory, configuration.DataDirectory)
	assert.Equal(t, []string{"127.0.0.1:3130"}, configuration.Worker.Listen)
	assert.Equal(t, "batch", configuration.Worker.Engine)
	assert.Equal(t, uint64(1024), configuration.Worker.BatchSize)
	assert.Equal(t, 15.0, configuration.Worker.RequestRate)

	// relative key files are resolved against the data directory
	assert.Equal(t, filepath.Join(directory, defaultPublicKeyFile), configuration.Worker.PublicKey)
	assert.Equal(t, filepath.Join(directory, defaultPrivateKeyFile), configuration.Worker.PrivateKey)
}

func TestFirstRefreshWithMissingFile(t *testing.T) {
	reader := &ConfigReaderData{}

	err := reader.FirstRefresh("/no-such-directory/solverd.conf")
	assert.Error(t, err, "a missing configuration file must be reported")
}

func TestNotifyAppliesWorkerSettings(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	applied := 0
	var appliedConfiguration *worker.Configuration

	reader := &ConfigReaderData{
		apply: func(configuration *worker.Configuration) error {
			applied += 1
			appliedConfiguration = configuration
			return nil
		},
	}
	_ = reader.SetLog(logger.New(fixtures.LogCategory))

	newConfiguration := &Configuration{
		Worker: worker.Configuration{Engine: "batch"},
	}
	reader.update(newConfiguration)
	reader.notify()

	assert.Equal(t, 1, applied)
	assert.Equal(t, &newConfiguration.Worker, appliedConfiguration)
}
