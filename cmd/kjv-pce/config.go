// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/metcalfeakj/KJV-PCE/pkg/types"
)

// envKeyReplacer maps keys such as "latex_dir" and "layout.margin_cm" to
// KJV_PCE_LATEX_DIR and KJV_PCE_LAYOUT_MARGIN_CM.
var envKeyReplacer = strings.NewReplacer("-", "_", ".", "_")

// flagKeys maps command-line flag names to the configuration keys they
// override. Keys match the Config mapstructure tags so a config file uses
// the same names.
var flagKeys = map[string]string{
	"db":                "db_path",
	"latex-dir":         "latex_dir",
	"pdf-dir":           "pdf_dir",
	"font-dir":          "font_dir",
	"log-level":         "log_level",
	"log-format":        "log_format",
	"xelatex":           "xelatex",
	"continue-on-error": "continue_on_error",
	"incremental":       "incremental",
	"quiet":             "quiet",
}

// bindFlags binds every flag in fs that has a configuration key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			_ = v.BindPFlag(key, f)
		}
	})
}

// setDefaults registers every configuration key so that environment
// variables and config files can override any of them.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("latex_dir", d.LaTeXDir)
	v.SetDefault("pdf_dir", d.PDFDir)
	v.SetDefault("font_dir", d.FontDir)
	v.SetDefault("xelatex", d.XeLaTeX)
	v.SetDefault("continue_on_error", d.ContinueOnError)
	v.SetDefault("incremental", d.Incremental)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	v.SetDefault("layout.page_height_cm", d.Layout.PageHeightCM)
	v.SetDefault("layout.margin_cm", d.Layout.MarginCM)
	v.SetDefault("layout.font_size_pt", d.Layout.FontSizePt)
	v.SetDefault("layout.line_spread", d.Layout.LineSpread)
	v.SetDefault("layout.avg_chars_per_line", d.Layout.AvgCharsPerLine)
	v.SetDefault("layout.min_lines_for_paragraph", d.Layout.MinLinesForParagraph)
	v.SetDefault("layout.paragraph_overhead", d.Layout.ParagraphOverhead)

	v.SetDefault("fonts.main", d.Fonts.Main)
	v.SetDefault("fonts.italic", d.Fonts.Italic)
	v.SetDefault("fonts.bold", d.Fonts.Bold)
	v.SetDefault("fonts.sans", d.Fonts.Sans)
	v.SetDefault("fonts.blackletter", d.Fonts.Blackletter)
}

// loadConfig decodes the merged flag, environment, file, and default
// settings into a validated Config. Unknown keys are rejected.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}
