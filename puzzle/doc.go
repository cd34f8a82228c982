// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package puzzle - puzzle and solution value objects
//
// defines the target model (difficulty = leading zero bits of the
// digest), the strict JSON wire codec, solution verification and
// random puzzle generation
//
// puzzles are immutable values created fresh for one round; equality
// is plain struct comparison on data and difficulty
package puzzle
