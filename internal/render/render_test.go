// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metcalfeakj/KJV-PCE/internal/typeset"
	"github.com/metcalfeakj/KJV-PCE/internal/verses"
	"github.com/metcalfeakj/KJV-PCE/pkg/types"
)

// --- test doubles ---

// fakeSource serves books from memory: book name -> chapter -> verses.
type fakeSource struct {
	books map[string]map[int][]types.Verse
	ids   map[int64]string
}

func newFakeSource(books map[string]map[int][]types.Verse) *fakeSource {
	s := &fakeSource{books: books, ids: map[int64]string{}}
	var id int64
	for name := range books {
		id++
		s.ids[id] = name
	}
	return s
}

func (s *fakeSource) BookID(_ context.Context, name string) (int64, error) {
	for id, n := range s.ids {
		if n == name {
			return id, nil
		}
	}
	return 0, &verses.NotFoundError{Resource: "book", ID: name}
}

func (s *fakeSource) Chapters(_ context.Context, bookID int64) ([]int, error) {
	var chapters []int
	for ch := range s.books[s.ids[bookID]] {
		chapters = append(chapters, ch)
	}
	sort.Ints(chapters)
	return chapters, nil
}

func (s *fakeSource) Verses(_ context.Context, bookID int64, chapter int) ([]types.Verse, error) {
	return s.books[s.ids[bookID]][chapter], nil
}

// fakeTypesetter records documents and writes a stand-in PDF next to the
// configured output directory. failOn lists document base names that fail.
type fakeTypesetter struct {
	pdfDir string
	failOn map[string]bool
	calls  []string
}

func (f *fakeTypesetter) Name() string { return "fake-xelatex" }

func (f *fakeTypesetter) Render(_ context.Context, documentPath string) error {
	f.calls = append(f.calls, documentPath)
	base := strings.TrimSuffix(filepath.Base(documentPath), ".tex")
	if f.failOn[base] {
		return &typeset.ToolError{Tool: "fake-xelatex", Document: documentPath, ExitCode: 1, Err: errors.New("exit status 1")}
	}
	return os.WriteFile(filepath.Join(f.pdfDir, base+".pdf"), []byte("%PDF-1.5"), 0o644)
}

// --- test helpers ---

func testConfig(t *testing.T) types.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := types.DefaultConfig()
	cfg.DBPath = filepath.Join(dir, "unused.sqlite")
	cfg.LaTeXDir = filepath.Join(dir, "latex_output")
	cfg.PDFDir = filepath.Join(dir, "pdf_output")
	cfg.FontDir = filepath.Join(dir, "fonts")
	return cfg
}

func sampleBooks() map[string]map[int][]types.Verse {
	return map[string]map[int][]types.Verse{
		"Genesis": {
			1: {
				{Number: 1, Text: "[In] the beginning God created the heaven and the earth.", ParagraphStart: true},
				{Number: 2, Text: "And the earth was without form, and void."},
			},
			2: {
				{Number: 1, Text: "Thus the heavens and the earth were finished.", ParagraphStart: true},
			},
			3: {
				{Number: 1, Text: "Now the serpent was more subtil than any beast of the field.", ParagraphStart: true},
			},
		},
		"Obadiah": {
			1: nil,
		},
	}
}

type fixture struct {
	cfg    types.Config
	ts     *fakeTypesetter
	out    *bytes.Buffer
	driver *Driver
}

func newFixture(t *testing.T, mutate func(*types.Config)) *fixture {
	t.Helper()
	cfg := testConfig(t)
	if mutate != nil {
		mutate(&cfg)
	}
	ts := &fakeTypesetter{pdfDir: cfg.PDFDir, failOn: map[string]bool{}}
	var out bytes.Buffer
	d, err := NewDriver(newFakeSource(sampleBooks()), ts, cfg, &out)
	require.NoError(t, err)
	return &fixture{cfg: cfg, ts: ts, out: &out, driver: d}
}

// --- tests ---

func TestNewDriverRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.LaTeXDir = ""
	_, err := NewDriver(newFakeSource(nil), &fakeTypesetter{}, cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latex_dir")

	cfg = testConfig(t)
	cfg.Layout.FontSizePt = 500
	_, err = NewDriver(newFakeSource(nil), &fakeTypesetter{}, cfg, nil)
	require.Error(t, err)
}

func TestRenderChapter(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.driver.RenderChapter(context.Background(), "Genesis", 1)
	require.NoError(t, err)

	wantDoc := filepath.Join(f.cfg.LaTeXDir, "Genesis_1_formatted.tex")
	assert.Equal(t, StatusRendered, res.Status)
	assert.Equal(t, wantDoc, res.DocumentPath)
	assert.Equal(t, filepath.Join(f.cfg.PDFDir, "Genesis_1_formatted.pdf"), res.PDFPath)
	assert.Equal(t, 1, res.Paragraphs)
	assert.Equal(t, []string{wantDoc}, f.ts.calls)

	data, err := os.ReadFile(wantDoc)
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, `\section*{Genesis 1}`)
	assert.Contains(t, doc, `\pilcrow \textit{In} the beginning God created the heaven and the earth. And the earth was without form, and void.`)
	assert.Contains(t, doc, "Path="+f.cfg.FontDir+"/")

	assert.Contains(t, f.out.String(), "rendered: Genesis 1")
}

func TestRenderChapterNotFound(t *testing.T) {
	tests := []struct {
		name    string
		book    string
		chapter int
	}{
		{name: "unknown book", book: "Hezekiah", chapter: 1},
		{name: "chapter without verses", book: "Obadiah", chapter: 1},
		{name: "chapter beyond book", book: "Genesis", chapter: 51},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)

			_, err := f.driver.RenderChapter(context.Background(), tt.book, tt.chapter)
			require.Error(t, err)
			assert.ErrorIs(t, err, verses.ErrNotFound)

			_, statErr := os.Stat(f.cfg.LaTeXDir)
			assert.True(t, os.IsNotExist(statErr), "nothing may be written for a missing chapter")
			assert.Empty(t, f.ts.calls)
		})
	}
}

func TestRenderChapterToolFailureKeepsDocument(t *testing.T) {
	f := newFixture(t, nil)
	f.ts.failOn["Genesis_2_formatted"] = true

	res, err := f.driver.RenderChapter(context.Background(), "Genesis", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, typeset.ErrExternalTool)
	assert.Equal(t, StatusFailed, res.Status)

	_, statErr := os.Stat(res.DocumentPath)
	assert.NoError(t, statErr, "document must exist despite typesetter failure")
	assert.Contains(t, f.out.String(), "failed:   Genesis 2")
}

func TestRenderBookAscending(t *testing.T) {
	f := newFixture(t, nil)

	result, err := f.driver.RenderBook(context.Background(), "Genesis")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Rendered)
	assert.Equal(t, 3, result.Total())
	assert.False(t, result.HasFailures())
	require.Len(t, f.ts.calls, 3)
	for i, call := range f.ts.calls {
		assert.Equal(t, filepath.Join(f.cfg.LaTeXDir, "Genesis_"+string(rune('1'+i))+"_formatted.tex"), call)
	}
	assert.Contains(t, f.out.String(), "Book summary: 3 rendered, 0 skipped, 0 failed (total: 3)")
}

func TestRenderBookUnknown(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.driver.RenderBook(context.Background(), "Hezekiah")
	assert.ErrorIs(t, err, verses.ErrNotFound)
}

func TestRenderBookAbortsOnFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.ts.failOn["Genesis_2_formatted"] = true

	result, err := f.driver.RenderBook(context.Background(), "Genesis")
	require.Error(t, err)
	assert.ErrorIs(t, err, typeset.ErrExternalTool)
	assert.Equal(t, 1, result.Rendered)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, f.ts.calls, 2, "chapter 3 must not be attempted")
}

func TestRenderBookContinueOnError(t *testing.T) {
	f := newFixture(t, func(c *types.Config) { c.ContinueOnError = true })
	f.ts.failOn["Genesis_2_formatted"] = true

	result, err := f.driver.RenderBook(context.Background(), "Genesis")
	require.NoError(t, err)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 2, result.Rendered)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, f.ts.calls, 3)
	require.Len(t, result.Results, 3)
	assert.Equal(t, StatusFailed, result.Results[1].Status)
	assert.Contains(t, f.out.String(), "Book summary: 2 rendered, 0 skipped, 1 failed (total: 3)")
}

func TestRenderBookCancelled(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.driver.RenderBook(ctx, "Genesis")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.ts.calls)
}

func TestRenderIncremental(t *testing.T) {
	f := newFixture(t, func(c *types.Config) { c.Incremental = true })
	ctx := context.Background()

	res, err := f.driver.RenderChapter(ctx, "Genesis", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusRendered, res.Status)

	res, err = f.driver.RenderChapter(ctx, "Genesis", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Len(t, f.ts.calls, 1)

	// A missing PDF forces a re-render even when the document is unchanged.
	require.NoError(t, os.Remove(res.PDFPath))
	res, err = f.driver.RenderChapter(ctx, "Genesis", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusRendered, res.Status)
	assert.Len(t, f.ts.calls, 2)

	m, err := LoadManifest(f.cfg.LaTeXDir)
	require.NoError(t, err)
	data, err := os.ReadFile(res.DocumentPath)
	require.NoError(t, err)
	assert.True(t, m.Unchanged("Genesis_1_formatted.tex", Digest(data)))
}

func TestRenderIncrementalDoesNotRecordFailures(t *testing.T) {
	f := newFixture(t, func(c *types.Config) { c.Incremental = true })
	f.ts.failOn["Genesis_3_formatted"] = true

	_, err := f.driver.RenderChapter(context.Background(), "Genesis", 3)
	require.Error(t, err)

	m, err := LoadManifest(f.cfg.LaTeXDir)
	require.NoError(t, err)
	assert.NotContains(t, m.Documents, "Genesis_3_formatted.tex")
}
