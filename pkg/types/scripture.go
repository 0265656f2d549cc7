// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the kjv-pce pipeline:
// verse records read from the scripture database and the configuration
// that drives grouping, packing, emission, and typesetting.
package types

// Verse is a single verse record within a chapter.
type Verse struct {
	// Number is the chapter-relative verse number.
	Number int `json:"number" yaml:"number"`

	// Text is the verse text as stored. Editorially supplied words are
	// enclosed in square brackets.
	Text string `json:"text" yaml:"text"`

	// ParagraphStart marks a verse that opens a new paragraph (pilcrow).
	ParagraphStart bool `json:"paragraph_start" yaml:"paragraph_start"`
}

// ChapterRef identifies one chapter of a book.
type ChapterRef struct {
	Book    string `json:"book" yaml:"book"`
	Chapter int    `json:"chapter" yaml:"chapter"`
}
