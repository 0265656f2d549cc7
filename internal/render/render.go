// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render drives a chapter from database to typeset page: fetch
// verses, group paragraphs, pack columns, emit the document, and hand it
// to the typesetter.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/metcalfeakj/KJV-PCE/internal/latex"
	"github.com/metcalfeakj/KJV-PCE/internal/layout"
	"github.com/metcalfeakj/KJV-PCE/internal/logging"
	"github.com/metcalfeakj/KJV-PCE/internal/paragraph"
	"github.com/metcalfeakj/KJV-PCE/internal/typeset"
	"github.com/metcalfeakj/KJV-PCE/internal/verses"
	"github.com/metcalfeakj/KJV-PCE/pkg/types"
)

// Source is the read-only verse repository the driver pulls from.
// *verses.Store implements it.
type Source interface {
	BookID(ctx context.Context, name string) (int64, error)
	Chapters(ctx context.Context, bookID int64) ([]int, error)
	Verses(ctx context.Context, bookID int64, chapter int) ([]types.Verse, error)
}

// Status is the outcome of one chapter render.
type Status string

const (
	StatusRendered Status = "rendered"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// Result describes one chapter render.
type Result struct {
	types.ChapterRef

	Status       Status
	DocumentPath string
	PDFPath      string
	Paragraphs   int
	Breaks       int
}

// BatchResult holds the outcome of a whole-book render.
type BatchResult struct {
	Rendered int
	Skipped  int
	Failed   int
	Results  []Result
}

// Total returns the number of chapters processed.
func (r BatchResult) Total() int {
	return r.Rendered + r.Skipped + r.Failed
}

// HasFailures reports whether any chapter failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Driver renders chapters. It is not safe for concurrent use.
type Driver struct {
	source     Source
	typesetter typeset.Typesetter
	cfg        types.Config
	packer     *layout.Packer
	out        io.Writer
	now        func() time.Time
}

// NewDriver validates cfg and returns a driver that reports per-chapter
// status lines to w.
func NewDriver(src Source, ts typeset.Typesetter, cfg types.Config, w io.Writer) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	packer, err := layout.NewPacker(cfg.Layout)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = io.Discard
	}
	return &Driver{
		source:     src,
		typesetter: ts,
		cfg:        cfg,
		packer:     packer,
		out:        w,
		now:        time.Now,
	}, nil
}

// RenderChapter renders one chapter. An unknown book or a chapter without
// verses returns an error wrapping verses.ErrNotFound before anything is
// written. A typesetter failure returns an error wrapping
// typeset.ErrExternalTool; the document file is left on disk.
func (d *Driver) RenderChapter(ctx context.Context, book string, chapter int) (Result, error) {
	bookID, err := d.source.BookID(ctx, book)
	if err != nil {
		return Result{}, err
	}
	res, err := d.renderChapter(ctx, book, bookID, chapter)
	if err != nil {
		fmt.Fprintf(d.out, "failed:   %s %d (%v)\n", book, chapter, err)
	}
	return res, err
}

// RenderBook renders every chapter of book in ascending order. By default
// the first failing chapter aborts the run and its error is returned.
// With ContinueOnError set, failures are reported and counted, and the
// run carries on; check BatchResult.HasFailures.
func (d *Driver) RenderBook(ctx context.Context, book string) (BatchResult, error) {
	log := logging.FromContext(ctx)

	bookID, err := d.source.BookID(ctx, book)
	if err != nil {
		return BatchResult{}, err
	}
	chapters, err := d.source.Chapters(ctx, bookID)
	if err != nil {
		return BatchResult{}, fmt.Errorf("listing chapters of %s: %w", book, err)
	}
	log.Info("rendering book", "book", book, "chapters", len(chapters))

	var result BatchResult
	for _, ch := range chapters {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		res, err := d.renderChapter(ctx, book, bookID, ch)
		result.Results = append(result.Results, res)
		if err != nil {
			fmt.Fprintf(d.out, "failed:   %s %d (%v)\n", book, ch, err)
			result.Failed++
			if !d.cfg.ContinueOnError {
				return result, err
			}
			log.Warn("chapter failed, continuing", "book", book, "chapter", ch, "error", err)
			continue
		}
		switch res.Status {
		case StatusSkipped:
			result.Skipped++
		default:
			result.Rendered++
		}
	}

	fmt.Fprintf(d.out, "\nBook summary: %d rendered, %d skipped, %d failed (total: %d)\n",
		result.Rendered, result.Skipped, result.Failed, result.Total())
	return result, nil
}

func (d *Driver) renderChapter(ctx context.Context, book string, bookID int64, chapter int) (Result, error) {
	log := logging.FromContext(ctx).With("book", book, "chapter", chapter)

	res := Result{
		ChapterRef: types.ChapterRef{Book: book, Chapter: chapter},
		Status:     StatusFailed,
	}

	vs, err := d.source.Verses(ctx, bookID, chapter)
	if err != nil {
		return res, fmt.Errorf("fetching %s %d: %w", book, chapter, err)
	}
	if len(vs) == 0 {
		return res, verses.ChapterNotFound(book, chapter)
	}

	paragraphs := paragraph.Group(vs)
	packed := d.packer.Pack(paragraphs)
	res.Paragraphs = len(paragraphs)
	res.Breaks = len(packed.Breaks)
	log.Debug("packed chapter",
		"verses", len(vs),
		"paragraphs", len(paragraphs),
		"breaks", len(packed.Breaks),
		"lines_used", packed.LinesUsed,
		"lines_per_column", d.packer.Capacity)

	source := latex.Render(latex.Document{
		Book:     book,
		Chapter:  chapter,
		Body:     packed.Body,
		FontDir:  d.cfg.FontDir,
		Fonts:    d.cfg.Fonts,
		MarginCM: d.cfg.Layout.MarginCM,
	})

	for _, dir := range []string{d.cfg.LaTeXDir, d.cfg.PDFDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	name := latex.FileName(book, chapter)
	res.DocumentPath = filepath.Join(d.cfg.LaTeXDir, name)
	res.PDFPath = filepath.Join(d.cfg.PDFDir, latex.BaseName(book, chapter)+".pdf")

	data := []byte(source)
	if err := os.WriteFile(res.DocumentPath, data, 0o644); err != nil {
		return res, fmt.Errorf("writing document %s: %w", res.DocumentPath, err)
	}
	log.Debug("document written", "path", res.DocumentPath, "bytes", len(data))

	var (
		manifest *Manifest
		digest   string
	)
	if d.cfg.Incremental {
		manifest, err = LoadManifest(d.cfg.LaTeXDir)
		if err != nil {
			return res, err
		}
		digest = Digest(data)
		if manifest.Unchanged(name, digest) && fileExists(res.PDFPath) {
			res.Status = StatusSkipped
			fmt.Fprintf(d.out, "skipped:  %s %d (unchanged)\n", book, chapter)
			return res, nil
		}
	}

	if err := d.typesetter.Render(ctx, res.DocumentPath); err != nil {
		return res, fmt.Errorf("typesetting %s %d: %w", book, chapter, err)
	}

	if manifest != nil {
		manifest.Record(name, digest, d.now())
		if err := manifest.Save(d.cfg.LaTeXDir); err != nil {
			log.Warn("render manifest not updated", "error", err)
		}
	}

	res.Status = StatusRendered
	fmt.Fprintf(d.out, "rendered: %s %d -> %s\n", book, chapter, res.PDFPath)
	return res, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
