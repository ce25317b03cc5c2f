// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package graphemes presents text as a sequence of extended grapheme clusters,
// suitable as input to a character-level token buffer.
//
// This package only segments text. It does not classify or merge clusters
// into larger tokens.
package graphemes

import (
	"slices"

	"github.com/rivo/uniseg"
)

// Text is a string split into grapheme clusters. It implements
// [seq.Indexer][string].
//
// A zero Text is empty.
type Text struct {
	text string
	// offsets[i] is the byte offset of cluster i. It has one extra trailing
	// entry equal to len(text).
	offsets []int
}

// Split segments text into extended grapheme clusters.
func Split(text string) *Text {
	t := &Text{text: text}
	for gs := uniseg.NewGraphemes(text); gs.Next(); {
		start, _ := gs.Positions()
		t.offsets = append(t.offsets, start)
	}
	t.offsets = append(t.offsets, len(text))
	return t
}

// String returns the original text.
func (t *Text) String() string {
	return t.text
}

// Len implements [seq.Indexer].
func (t *Text) Len() int {
	if len(t.offsets) == 0 {
		return 0
	}
	return len(t.offsets) - 1
}

// At implements [seq.Indexer].
func (t *Text) At(idx int) string {
	return t.text[t.offsets[idx]:t.offsets[idx+1]]
}

// Offset returns the byte offset at which cluster idx starts. Offset(Len())
// is the length of the text.
func (t *Text) Offset(idx int) int {
	if len(t.offsets) == 0 && idx == 0 {
		return 0
	}
	return t.offsets[idx]
}

// IndexOf returns the index of the cluster containing the given byte offset.
// An offset equal to the length of the text maps to Len().
//
// Returns -1 if offset is out of range.
func (t *Text) IndexOf(offset int) int {
	if offset < 0 || offset > len(t.text) {
		return -1
	}
	if offset == len(t.text) {
		return t.Len()
	}
	idx, found := slices.BinarySearch(t.offsets, offset)
	if !found {
		idx--
	}
	return idx
}

// Width returns the monospace display width of cluster idx.
func (t *Text) Width(idx int) int {
	return uniseg.StringWidth(t.At(idx))
}
