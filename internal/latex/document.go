// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex emits the chapter document handed to the typesetter.
package latex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metcalfeakj/KJV-PCE/pkg/types"
)

// Document describes one chapter page description.
type Document struct {
	Book    string
	Chapter int

	// Body is the packed paragraph stream placed inside the two-column
	// environment.
	Body string

	// FontDir is the directory fontspec loads font files from.
	FontDir string

	Fonts    types.FontConfig
	MarginCM float64
}

// FileName returns the document file name for a chapter, e.g.
// "Song_of_Solomon_2_formatted.tex".
func FileName(book string, chapter int) string {
	return BaseName(book, chapter) + ".tex"
}

// BaseName is FileName without the extension. The typesetter names its
// output after it.
func BaseName(book string, chapter int) string {
	return strings.ReplaceAll(book, " ", "_") + "_" + strconv.Itoa(chapter) + "_formatted"
}

// Render produces the full LaTeX source for doc.
func Render(doc Document) string {
	fontPath := strings.TrimSuffix(doc.FontDir, "/") + "/"

	var b strings.Builder
	b.WriteString(`\documentclass[landscape, a4paper, 12pt]{article}` + "\n")
	fmt.Fprintf(&b, "\\usepackage[margin=%scm]{geometry}\n", formatCM(doc.MarginCM))
	b.WriteString(`\usepackage{parskip}
\usepackage{fontspec}
\usepackage{titlesec}
\usepackage{setspace}
\usepackage{multicol}

`)
	fmt.Fprintf(&b, "\\setmainfont{%s}[Path=%s, ItalicFont=%s, BoldFont=%s]\n",
		doc.Fonts.Main, fontPath, doc.Fonts.Italic, doc.Fonts.Bold)
	fmt.Fprintf(&b, "\\newfontfamily\\plexsans{%s}[Path=%s]\n", doc.Fonts.Sans, fontPath)
	fmt.Fprintf(&b, "\\newfontfamily\\kjvblackletter{%s}[Path=%s]\n", doc.Fonts.Blackletter, fontPath)
	b.WriteString(`
\newcommand{\pilcrow}{\textbf{\P}\hspace{0.3em}}

\titleformat{\section}{\kjvblackletter\centering\Huge}{}{0pt}{}
\pagestyle{empty}
\setlength{\columnsep}{1.2em}
\setlength{\columnseprule}{0.5pt}

\begin{document}

`)
	fmt.Fprintf(&b, "\\section*{%s %d}\n\n", Escape(doc.Book), doc.Chapter)
	b.WriteString(`\vspace{0.5em}

\begin{multicols}{2}
`)
	b.WriteString(doc.Body)
	b.WriteString(`
\end{multicols}

\end{document}`)
	return b.String()
}

// formatCM prints a length without trailing zeros: 0.8, 1, 1.25.
func formatCM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
