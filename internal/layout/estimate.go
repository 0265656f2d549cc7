// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout estimates how much column space paragraphs take and packs
// them into a two-column document, inserting column breaks where a
// paragraph would otherwise start in a cramped column tail.
package layout

import (
	"math"
	"unicode/utf8"

	"github.com/metcalfeakj/KJV-PCE/pkg/types"
)

const pointsPerCM = 28.3465

// DefaultAvgCharsPerLine is the calibration for IBM Plex Serif at 12pt in
// one column of an A4 landscape page.
const DefaultAvgCharsPerLine = 95

// EstimateLines approximates the number of typeset lines text occupies:
// ceil(chars/avgCharsPerLine) + 1. Characters are counted as runes. The
// result is at least 1 and never decreases as text grows.
func EstimateLines(text string, avgCharsPerLine int) int {
	if avgCharsPerLine <= 0 {
		avgCharsPerLine = DefaultAvgCharsPerLine
	}
	n := utf8.RuneCountInString(text)
	return (n+avgCharsPerLine-1)/avgCharsPerLine + 1
}

// LinesPerColumn is the number of text lines that fit between the top and
// bottom margins.
func LinesPerColumn(l types.LayoutConfig) int {
	printable := (l.PageHeightCM - 2*l.MarginCM) * pointsPerCM
	lineHeight := l.FontSizePt * l.LineSpread
	if printable <= 0 || lineHeight <= 0 {
		return 0
	}
	return int(math.Floor(printable / lineHeight))
}
