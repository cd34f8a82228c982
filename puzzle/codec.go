// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package puzzle

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/tessera-net/tesserad/fault"
)

// Encode - the wire form of a puzzle
func (p Puzzle) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// Encode - the wire form of a solution
func (s Solution) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodePuzzle - strict decode of a puzzle wire form
//
// unknown fields, trailing data and out of range difficulty are all
// rejected with a decode fault, never a panic
func DecodePuzzle(data []byte) (Puzzle, error) {
	var p Puzzle
	if !strictDecode(data, &p) {
		return Puzzle{}, fault.InvalidPuzzleEncoding
	}
	if nil != p.Validate() {
		return Puzzle{}, fault.DifficultyOutOfRange
	}
	return p, nil
}

// DecodeSolution - strict decode of a solution wire form
func DecodeSolution(data []byte) (Solution, error) {
	var s Solution
	if !strictDecode(data, &s) {
		return Solution{}, fault.InvalidSolutionEncoding
	}
	if nil != s.Puzzle.Validate() {
		return Solution{}, fault.DifficultyOutOfRange
	}
	return s, nil
}

func strictDecode(data []byte, value interface{}) bool {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(value); nil != err {
		return false
	}
	// nothing may follow the single encoded value
	if _, err := decoder.Token(); io.EOF != err {
		return false
	}
	return true
}
