// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/configuration"
	"github.com/tessera-net/tesserad/coordinator"
	"github.com/tessera-net/tesserad/status"
	"github.com/tessera-net/tesserad/subnet"
	"github.com/tessera-net/tesserad/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from the configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultPublicKeyFile      = "tesserad.public"
	defaultPrivateKeyFile     = "tesserad.private"
	defaultLiveSigningKeyFile = "tesserad.live"
	defaultTestSigningKeyFile = "tesserad.test"
	defaultKeyFile            = "status.key"
	defaultCertificateFile    = "status.crt"

	defaultLevelDBDirectory = "data"
	defaultTesseraDatabase  = subnet.Tessera
	defaultTestingDatabase  = subnet.Testing
	defaultLocalDatabase    = subnet.Local

	defaultLogDirectory = "log"
	defaultLogFile      = "tesserad.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultStatusClients = 10
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Subnet        string       `gluamapper:"subnet" json:"subnet"`
	ProfileHTTP   string       `gluamapper:"profile_http" json:"profile_http"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	Coordinator coordinator.Configuration `gluamapper:"coordinator" json:"coordinator"`
	Status      status.Configuration      `gluamapper:"status" json:"status"`
	Logging     logger.Configuration      `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Subnet:        subnet.Tessera,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultTesseraDatabase,
		},

		Coordinator: coordinator.Configuration{
			PublicKey:  defaultPublicKeyFile,
			PrivateKey: defaultPrivateKeyFile,
			SigningKey: defaultLiveSigningKeyFile,
		},

		Status: status.Configuration{
			MaximumConnections: defaultStatusClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// abort if the subnet name is not recognised
	options.Subnet = strings.ToLower(options.Subnet)
	if !subnet.Valid(options.Subnet) {
		return nil, fmt.Errorf("subnet: %q is not supported", options.Subnet)
	}

	// if database was not changed from default
	// switch to the appropriate database for the subnet
	if options.Database.Name == defaultTesseraDatabase {
		switch options.Subnet {
		case subnet.Tessera:
			// already correct default
		case subnet.Testing:
			options.Database.Name = defaultTestingDatabase
		case subnet.Local:
			options.Database.Name = defaultLocalDatabase
		}
	}

	// the live signing key is only a valid default on the live subnet
	if subnet.IsTesting(options.Subnet) && options.Coordinator.SigningKey == defaultLiveSigningKeyFile {
		options.Coordinator.SigningKey = defaultTestSigningKeyFile
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Coordinator.PublicKey,
		&options.Coordinator.PrivateKey,
		&options.Coordinator.SigningKey,
		&options.Status.Certificate,
		&options.Status.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Coordinator.Registry.Chain.CACertificate,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
