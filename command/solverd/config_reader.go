// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/worker"
)

// ConfigReader - reload the configuration file while the daemon runs
type ConfigReader interface {
	FirstRefresh(fileName string) error
	GetConfig() (*Configuration, error)
	SetLog(*logger.L) error
	SetWatcher(watcher FileWatcher)
	Refresh() error
	Start()
}

const (
	oneMinute          = time.Duration(1) * time.Minute
	ReaderLoggerPrefix = "config-reader"
)

type ConfigReaderData struct {
	fileName             string
	refreshDelay         time.Duration
	log                  *logger.L
	currentConfiguration *Configuration
	initialised          bool
	watcher              FileWatcher

	// pushes fresh worker settings into the running worker
	apply func(*worker.Configuration) error
}

func newConfigReader() ConfigReader {
	return &ConfigReaderData{
		log:                  nil,
		currentConfiguration: nil,
		initialised:          false,
		refreshDelay:         oneMinute,
		apply:                worker.Reconfigure,
	}
}

// configuration needs read first to know logger file location
func (c *ConfigReaderData) FirstRefresh(fileName string) error {
	c.fileName = fileName
	return c.Refresh()
}

func (c *ConfigReaderData) SetWatcher(watcher FileWatcher) {
	c.watcher = watcher
}

func (c *ConfigReaderData) Start() {
	go func() {
		for {
			select {
			case <-c.watcher.ChangeChannel():
				c.log.Debug("receive file change event, wait to adapt")
				<-time.After(c.refreshDelay)
				err := c.Refresh()
				if nil != err {
					c.log.Errorf("failed to read configuration from: %q  error: %s",
						c.fileName, err)
					continue
				}
				c.notify()
			case <-c.watcher.RemoveChannel():
				c.log.Warn("config file removed")
			}
		}
	}()
}

func (c *ConfigReaderData) Refresh() error {
	configuration, err := c.parse()
	if nil != err {
		return err
	}
	c.update(configuration)
	return nil
}

func (c *ConfigReaderData) notify() {
	err := c.apply(&c.currentConfiguration.Worker)
	if nil != err {
		c.log.Errorf("reconfigure error: %s", err)
	}
}

func (c *ConfigReaderData) parse() (*Configuration, error) {
	configuration, err := getConfiguration(c.fileName)
	if nil != err {
		return nil, err
	}
	return configuration, nil
}

func (c *ConfigReaderData) GetConfig() (*Configuration, error) {
	if nil == c.currentConfiguration {
		return nil, fmt.Errorf("configuration is empty")
	}
	return c.currentConfiguration, nil
}

func (c *ConfigReaderData) SetLog(log *logger.L) error {
	if nil == log {
		return fmt.Errorf("logger %v is nil", log)
	}
	c.log = log
	c.initialised = true
	return nil
}

func (c *ConfigReaderData) update(newConfiguration *Configuration) {
	c.currentConfiguration = newConfiguration
	if c.initialised {
		c.log.Debugf("new configuration: engine: %q  rate: %v  replay: %ds",
			newConfiguration.Worker.Engine,
			newConfiguration.Worker.RequestRate,
			newConfiguration.Worker.ReplaySeconds,
		)
	}
}
