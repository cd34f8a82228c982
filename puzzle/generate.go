// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package puzzle

import (
	"crypto/rand"

	"github.com/tessera-net/tesserad/fault"
)

// every printable ASCII character except space
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Random - create a fresh puzzle with random data
//
// puzzles are produced ad hoc each round and never reused, so the
// data only has to be unpredictable, not secret
func Random(length int, difficulty uint64) (Puzzle, error) {

	p := Puzzle{
		Difficulty: difficulty,
	}
	if nil != p.Validate() {
		return Puzzle{}, fault.DifficultyOutOfRange
	}
	if length < 1 {
		return Puzzle{}, fault.MissingParameters
	}

	buffer := make([]byte, length)
	_, err := rand.Read(buffer)
	if nil != err {
		return Puzzle{}, err
	}

	for i, b := range buffer {
		buffer[i] = alphabet[int(b)%len(alphabet)]
	}
	p.Data = string(buffer)

	return p, nil
}
