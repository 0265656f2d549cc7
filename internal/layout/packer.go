// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"fmt"
	"strings"

	"github.com/metcalfeakj/KJV-PCE/pkg/types"
)

const (
	// ColumnBreak ends the current column. \vfill\null keeps the column's
	// content top-aligned instead of stretched.
	ColumnBreak = "\n\\vfill\\null\\columnbreak\n"

	// ParagraphEnd closes a paragraph and adds the inter-paragraph gap that
	// ParagraphOverhead accounts for.
	ParagraphEnd = "\n\\par\\vspace{0.6em}\n"
)

// Break records one inserted column break.
type Break struct {
	// Before is the index of the paragraph the break precedes.
	Before int

	// LinesRemaining is the space left in the column when the break was
	// inserted. It is always below the packer's MinLines.
	LinesRemaining int
}

// PackResult is the output of a packing pass.
type PackResult struct {
	// Body is the paragraph stream with break directives, ready to be
	// placed inside a multicols environment.
	Body string

	// Breaks lists inserted column breaks in document order.
	Breaks []Break

	// LinesUsed is the final value of the line cursor.
	LinesUsed int
}

// Packer lays paragraphs into fixed-height columns in a single greedy
// pass. Placement is final once made; paragraphs are never split or
// reordered.
type Packer struct {
	// Capacity is the number of lines in one column.
	Capacity int

	// MinLines is the smallest column tail a paragraph that does not fit
	// may still start in. Tails shorter than this are skipped with a break.
	MinLines int

	// Overhead is added to each paragraph's estimate for spacing.
	Overhead int

	// AvgCharsPerLine calibrates EstimateLines.
	AvgCharsPerLine int
}

// NewPacker derives a Packer from layout configuration.
func NewPacker(l types.LayoutConfig) (*Packer, error) {
	capacity := LinesPerColumn(l)
	if capacity < 1 {
		return nil, fmt.Errorf("layout leaves no room for text: %.2fcm page, %.2fcm margins, %.1fpt x %.2f lines",
			l.PageHeightCM, l.MarginCM, l.FontSizePt, l.LineSpread)
	}
	return &Packer{
		Capacity:        capacity,
		MinLines:        l.MinLinesForParagraph,
		Overhead:        l.ParagraphOverhead,
		AvgCharsPerLine: l.AvgCharsPerLine,
	}, nil
}

// Pack places paragraphs in order. Before each paragraph it checks the
// space left in the current column; when the paragraph does not fit and
// the space left is below MinLines, a column break is emitted and the
// cursor moves to the start of the next column. A paragraph that does not
// fit into a roomier tail is left to flow across the column boundary.
func (p *Packer) Pack(paragraphs []string) PackResult {
	var (
		body      strings.Builder
		breaks    []Break
		linesUsed int
	)

	for i, para := range paragraphs {
		paraLines := EstimateLines(para, p.AvgCharsPerLine) + p.Overhead
		remaining := p.Capacity - linesUsed%p.Capacity

		if paraLines > remaining && remaining < p.MinLines {
			body.WriteString(ColumnBreak)
			breaks = append(breaks, Break{Before: i, LinesRemaining: remaining})
			linesUsed = (linesUsed/p.Capacity + 1) * p.Capacity
		}

		body.WriteString(para)
		body.WriteString(ParagraphEnd)
		linesUsed += paraLines + 1
	}

	return PackResult{
		Body:      body.String(),
		Breaks:    breaks,
		LinesUsed: linesUsed,
	}
}
