// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metcalfeakj/KJV-PCE/internal/logging"
	"github.com/metcalfeakj/KJV-PCE/internal/render"
	"github.com/metcalfeakj/KJV-PCE/internal/typeset"
	"github.com/metcalfeakj/KJV-PCE/internal/verses"
)

var renderCmd = &cobra.Command{
	Use:   "render <book> [chapter]",
	Short: "Typeset one chapter, or every chapter of a book",
	Long: `Render writes a two-column LaTeX document for the chapter and runs
xelatex on it. Without a chapter number every chapter of the book is
rendered in ascending order; by default the first failure stops the run.

Book names must match the database exactly, e.g. "Acts" or "1 John".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.String("xelatex", "", "typesetter binary name or path (default xelatex)")
	f.Bool("continue-on-error", false, "keep rendering the remaining chapters after a failure")
	f.Bool("incremental", false, "skip chapters whose document is unchanged since the last successful render")
	f.Bool("quiet", false, "discard xelatex output")

	bindFlags(viper.GetViper(), f)

	rootCmd.AddCommand(renderCmd)
}

// parseChapter accepts a positive chapter number.
func parseChapter(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("chapter must be a positive integer, got %q", s)
	}
	return n, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	book := args[0]
	chapter := 0
	if len(args) == 2 {
		n, err := parseChapter(args[1])
		if err != nil {
			return err
		}
		chapter = n
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	ctx, runID := logging.WithRunID(cmd.Context())
	log := logging.FromContext(ctx)
	log.Debug("configuration loaded", "db", cfg.DBPath, "latex_dir", cfg.LaTeXDir, "pdf_dir", cfg.PDFDir)

	var toolOutput io.Writer = os.Stderr
	if cfg.Quiet {
		toolOutput = io.Discard
	}
	ts, err := typeset.NewXeLaTeX(cfg.XeLaTeX, cfg.PDFDir, toolOutput)
	if err != nil {
		return err
	}

	store, err := verses.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	driver, err := render.NewDriver(store, ts, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if chapter > 0 {
		_, err := driver.RenderChapter(ctx, book, chapter)
		return err
	}

	result, err := driver.RenderBook(ctx, book)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d chapter(s) of %s failed (run %s)", result.Failed, book, runID)
	}
	return nil
}
