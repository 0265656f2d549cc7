// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paragraph groups a chapter's verses into LaTeX paragraph strings.
package paragraph

import (
	"regexp"
	"strings"

	"github.com/metcalfeakj/KJV-PCE/internal/latex"
	"github.com/metcalfeakj/KJV-PCE/pkg/types"
)

// Pilcrow is the macro that opens a marked paragraph. The generated
// document defines it as a bold paragraph sign followed by a small space.
const Pilcrow = `\pilcrow`

// suppliedPattern matches editorially supplied words: [word] or [several words].
var suppliedPattern = regexp.MustCompile(`\[(.+?)\]`)

// FormatVerse escapes LaTeX specials and rewrites bracketed supplied words
// as italics, dropping the brackets.
func FormatVerse(text string) string {
	return suppliedPattern.ReplaceAllString(latex.Escape(text), `\textit{$1}`)
}

// Group turns verses into paragraphs. A verse flagged ParagraphStart closes
// the current paragraph and opens a new one with a pilcrow; any other verse
// is appended to the current paragraph, space separated. A chapter with no
// flagged verses yields a single paragraph.
func Group(verses []types.Verse) []string {
	var (
		paragraphs []string
		current    strings.Builder
	)

	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			paragraphs = append(paragraphs, p)
		}
		current.Reset()
	}

	for _, v := range verses {
		text := FormatVerse(v.Text)
		if v.ParagraphStart {
			flush()
			current.WriteString(Pilcrow)
			current.WriteByte(' ')
			current.WriteString(text)
			continue
		}
		current.WriteByte(' ')
		current.WriteString(text)
	}
	flush()

	return paragraphs
}
