// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// LayoutConfig holds the page geometry and packing calibration used to
// decide where column breaks go.
type LayoutConfig struct {
	// PageHeightCM is the physical page height (A4 landscape: 21.0).
	PageHeightCM float64 `json:"page_height_cm" yaml:"page_height_cm" mapstructure:"page_height_cm"`

	// MarginCM is the page margin applied on every side (default 0.8).
	MarginCM float64 `json:"margin_cm" yaml:"margin_cm" mapstructure:"margin_cm"`

	// FontSizePt is the body font size in points (default 12).
	FontSizePt float64 `json:"font_size_pt" yaml:"font_size_pt" mapstructure:"font_size_pt"`

	// LineSpread is the baseline stretch applied to the font size (default 1.6).
	LineSpread float64 `json:"line_spread" yaml:"line_spread" mapstructure:"line_spread"`

	// AvgCharsPerLine calibrates the line estimator for the chosen font
	// and column width (default 95).
	AvgCharsPerLine int `json:"avg_chars_per_line" yaml:"avg_chars_per_line" mapstructure:"avg_chars_per_line"`

	// MinLinesForParagraph is the smallest remaining column space worth
	// starting a paragraph in (default 7).
	MinLinesForParagraph int `json:"min_lines_for_paragraph" yaml:"min_lines_for_paragraph" mapstructure:"min_lines_for_paragraph"`

	// ParagraphOverhead is added to every paragraph estimate to account for
	// inter-paragraph spacing (default 2).
	ParagraphOverhead int `json:"paragraph_overhead" yaml:"paragraph_overhead" mapstructure:"paragraph_overhead"`
}

// FontConfig names the font files loaded by the generated document. Files
// are resolved relative to Config.FontDir.
type FontConfig struct {
	Main        string `json:"main" yaml:"main" mapstructure:"main"`
	Italic      string `json:"italic" yaml:"italic" mapstructure:"italic"`
	Bold        string `json:"bold" yaml:"bold" mapstructure:"bold"`
	Sans        string `json:"sans" yaml:"sans" mapstructure:"sans"`
	Blackletter string `json:"blackletter" yaml:"blackletter" mapstructure:"blackletter"`
}

// Config groups every setting the render driver needs.
type Config struct {
	// DBPath is the SQLite scripture database (e.g. "KJV-PCE.sqlite").
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// LaTeXDir receives one .tex document per chapter.
	LaTeXDir string `json:"latex_dir" yaml:"latex_dir" mapstructure:"latex_dir"`

	// PDFDir receives the typesetter output.
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir" mapstructure:"pdf_dir"`

	// FontDir is referenced from inside the generated document.
	FontDir string `json:"font_dir" yaml:"font_dir" mapstructure:"font_dir"`

	// XeLaTeX is the typesetter binary name or path.
	XeLaTeX string `json:"xelatex" yaml:"xelatex" mapstructure:"xelatex"`

	// ContinueOnError keeps a book render going after a chapter fails.
	ContinueOnError bool `json:"continue_on_error" yaml:"continue_on_error" mapstructure:"continue_on_error"`

	// Incremental skips typesetting chapters whose document is unchanged
	// since the last successful run.
	Incremental bool `json:"incremental" yaml:"incremental" mapstructure:"incremental"`

	// Quiet discards the typesetter's console output.
	Quiet bool `json:"quiet" yaml:"quiet" mapstructure:"quiet"`

	// LogLevel and LogFormat configure the diagnostic logger.
	LogLevel  string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`

	Layout LayoutConfig `json:"layout" yaml:"layout" mapstructure:"layout"`
	Fonts  FontConfig   `json:"fonts" yaml:"fonts" mapstructure:"fonts"`
}

// DefaultLayout returns the calibration the KJV-PCE documents were tuned for.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		PageHeightCM:         21.0,
		MarginCM:             0.8,
		FontSizePt:           12,
		LineSpread:           1.6,
		AvgCharsPerLine:      95,
		MinLinesForParagraph: 7,
		ParagraphOverhead:    2,
	}
}

// DefaultFonts returns the IBM Plex Serif body fonts and the KJV 1611
// blackletter heading font.
func DefaultFonts() FontConfig {
	return FontConfig{
		Main:        "IBMPlexSerif-Medium.ttf",
		Italic:      "IBMPlexSerif-MediumItalic.ttf",
		Bold:        "IBMPlexSerif-Bold.ttf",
		Sans:        "IBMPlexSans-Regular.ttf",
		Blackletter: "kjv1611-regular.otf",
	}
}

// DefaultConfig returns a Config with every field populated.
func DefaultConfig() Config {
	return Config{
		DBPath:    "KJV-PCE.sqlite",
		LaTeXDir:  "latex_output",
		PDFDir:    "pdf_output",
		FontDir:   "fonts",
		XeLaTeX:   "xelatex",
		LogLevel:  "info",
		LogFormat: "text",
		Layout:    DefaultLayout(),
		Fonts:     DefaultFonts(),
	}
}

// Validate reports the first missing path or non-positive layout value.
func (c Config) Validate() error {
	paths := []struct {
		name, value string
	}{
		{"db_path", c.DBPath},
		{"latex_dir", c.LaTeXDir},
		{"pdf_dir", c.PDFDir},
		{"font_dir", c.FontDir},
		{"xelatex", c.XeLaTeX},
	}
	for _, p := range paths {
		if p.value == "" {
			return fmt.Errorf("config: %s must not be empty", p.name)
		}
	}
	return c.Layout.Validate()
}

// Validate checks that the geometry yields at least one line per column
// and that the calibration constants are usable.
func (l LayoutConfig) Validate() error {
	switch {
	case l.PageHeightCM <= 0:
		return errors.New("config: layout.page_height_cm must be positive")
	case l.MarginCM < 0 || 2*l.MarginCM >= l.PageHeightCM:
		return errors.New("config: layout.margin_cm leaves no printable height")
	case l.FontSizePt <= 0 || l.LineSpread <= 0:
		return errors.New("config: layout.font_size_pt and layout.line_spread must be positive")
	case l.AvgCharsPerLine <= 0:
		return errors.New("config: layout.avg_chars_per_line must be positive")
	case l.MinLinesForParagraph < 0 || l.ParagraphOverhead < 0:
		return errors.New("config: layout thresholds must not be negative")
	}
	return nil
}
