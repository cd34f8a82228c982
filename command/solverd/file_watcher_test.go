// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/fixtures"
)

const testWatcherFileName = "testWatcher"

func setupTestFileWatcher(t *testing.T) *FileWatcherData {
	os.Remove(testWatcherFileName)
	fixtures.SetupTestLogger()

	w, err := fsnotify.NewWatcher()
	if nil != err {
		t.Fatalf("new watcher error: %s", err)
	}
	filePath, _ := filepath.Abs(filepath.Clean(testWatcherFileName))

	return &FileWatcherData{
		watcher: w,
		log:     logger.New(fixtures.LogCategory),
		channel: WatcherChannel{
			change: make(chan struct{}, 1),
			remove: make(chan struct{}, 1),
		},
		filePath: filePath,
	}
}

func teardownTestFileWatcher() {
	fixtures.TeardownTestLogger()
	os.Remove(testWatcherFileName)
}

func TestWatcherStart(t *testing.T) {
	fileWatcher := setupTestFileWatcher(t)
	defer teardownTestFileWatcher()

	emptyFile, err := os.Create(fileWatcher.filePath)
	if nil != err {
		t.Fatalf("create empty file error: %s", err)
	}
	emptyFile.Close()

	changed := false
	removed := false

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		for {
			select {
			case <-fileWatcher.ChangeChannel():
				if !changed {
					changed = true
					wg.Done()
				}
			case <-fileWatcher.RemoveChannel():
				if !removed {
					removed = true
					wg.Done()
				}
			}
		}
	}()

	err = fileWatcher.Start()
	if nil != err {
		t.Fatalf("watcher start error: %s", err)
	}
	time.Sleep(time.Duration(1) * time.Second)

	err = ioutil.WriteFile(fileWatcher.filePath, []byte("test"), 0600)
	if nil != err {
		t.Errorf("write file error: %s", err)
	}

	wg.Wait()
	if !changed {
		t.Errorf("watcher not receive change event")
	}

	wg.Add(1)
	os.Remove(testWatcherFileName)
	wg.Wait()

	if !removed {
		t.Errorf("watcher not receive remove event")
	}
}

func TestIsChannelFull(t *testing.T) {
	w := setupTestFileWatcher(t)
	defer teardownTestFileWatcher()

	ch := make(chan struct{}, 1)
	expected := false
	actual := w.isChannelFull(ch)
	if actual != expected {
		t.Errorf("error get channel status, expected %t but get %t",
			expected, actual)
	}

	ch <- struct{}{}
	expected = true
	actual = w.isChannelFull(ch)
	if actual != expected {
		t.Errorf("error get channel status, expected %t but get %t",
			expected, actual)
	}
}

func TestSendEvent(t *testing.T) {
	w := setupTestFileWatcher(t)
	defer teardownTestFileWatcher()

	ch := make(chan struct{}, 1)
	expected := true
	actual := false

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		<-ch
		actual = true
		wg.Done()
	}()

	w.sendEvent(ch, "test")

	wg.Wait()

	if actual != expected {
		t.Errorf("error send channel event, expected %t but get %t",
			expected, actual)
	}
}
