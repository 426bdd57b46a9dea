// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns markdown documents with fenced code into notebooks.
// It reads a source document, segments it into prose and code blocks,
// renders cells, and writes the .ipynb JSON either to a stream or next to
// the source.
package convert

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/zeebo/blake3"

	"github.com/pdiddy/md2ipynb/internal/notebook"
	"github.com/pdiddy/md2ipynb/internal/segment"
	"github.com/pdiddy/md2ipynb/pkg/types"
)

// notebookExt is the extension given to converted documents.
const notebookExt = ".ipynb"

// stdoutPath is recorded as the output path for stream conversions.
const stdoutPath = "-"

// Recorder stores a record of each completed conversion. The history
// package provides the SQLite implementation.
type Recorder interface {
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// Result summarizes one converted document.
type Result struct {
	Cells        int
	CodeCells    int
	Unterminated bool
	Digest       string
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Converter converts documents according to a ConversionConfig.
type Converter struct {
	cfg      types.ConversionConfig
	seg      *segment.Segmenter
	recorder Recorder
	runID    string
	logger   *slog.Logger
}

// Option customizes a Converter.
type Option func(*Converter)

// WithRecorder records every successful conversion under runID.
func WithRecorder(r Recorder, runID string) Option {
	return func(c *Converter) {
		c.recorder = r
		c.runID = runID
	}
}

// WithLogger sets the diagnostics logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// New creates a Converter. Empty config fields take their defaults.
func New(cfg types.ConversionConfig, opts ...Option) *Converter {
	cfg = cfg.WithDefaults()
	c := &Converter{
		cfg:    cfg,
		seg:    segment.New(cfg.Lang),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reads a whole document from r and writes the notebook JSON to w.
// Nothing is written when reading or encoding fails.
func (c *Converter) Convert(r io.Reader, w io.Writer) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading document: %w", err)
	}
	out, res, err := c.render(data)
	if err != nil {
		return Result{}, err
	}
	if _, err := w.Write(out); err != nil {
		return Result{}, fmt.Errorf("writing notebook: %w", err)
	}
	return res, nil
}

// render segments data and returns the encoded notebook.
func (c *Converter) render(data []byte) ([]byte, Result, error) {
	blocks := c.seg.Segment(SplitLines(string(data)))
	cells := notebook.Render(blocks)

	res := Result{Cells: len(cells), Digest: digest(data)}
	for _, b := range blocks {
		if b.IsCode() {
			res.CodeCells++
			if !b.Terminated {
				res.Unterminated = true
			}
		}
	}

	out, err := notebook.Marshal(notebook.New(cells, c.cfg.Kernel), c.cfg.Indent)
	if err != nil {
		return nil, Result{}, err
	}
	c.logger.Debug("rendered notebook",
		"blocks", len(blocks), "cells", res.Cells, "code_cells", res.CodeCells,
		"unterminated", res.Unterminated)
	return out, res, nil
}

// ConvertToWriter converts the document at srcPath and writes the notebook
// to w. It is the single-file mode that prints to standard output.
func (c *Converter) ConvertToWriter(ctx context.Context, srcPath string, w io.Writer) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer f.Close()

	res, err := c.Convert(f, w)
	if err != nil {
		return fmt.Errorf("converting %s: %w", srcPath, err)
	}
	c.warnUnterminated(srcPath, res)
	c.record(ctx, srcPath, stdoutPath, res)
	return nil
}

// ConvertFile converts a single document, writing the notebook to the path
// returned by OutputPath. rel is the source path relative to the batch root
// and decides the layout under OutDir. It returns the status of the
// conversion; existing notebooks are skipped unless Force is set.
func (c *Converter) ConvertFile(ctx context.Context, srcPath, rel string, w io.Writer) types.ConversionStatus {
	outPath := c.OutputPath(srcPath, rel)
	name := strings.TrimSuffix(rel, filepath.Ext(rel))

	if !c.cfg.Force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
			return types.ConversionNone
		}
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ConversionFailed
	}

	out, res, err := c.render(data)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ConversionFailed
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ConversionFailed
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return types.ConversionFailed
	}

	c.warnUnterminated(srcPath, res)
	c.record(ctx, srcPath, outPath, res)
	fmt.Fprintf(w, "converted: %s (%d cells, %d code)\n", name, res.Cells, res.CodeCells)
	return types.ConversionDone
}

// OutputPath returns where the notebook for srcPath is written. Without an
// OutDir the notebook sits next to its source; with one, rel is mirrored
// beneath it.
func (c *Converter) OutputPath(srcPath, rel string) string {
	if c.cfg.OutDir == "" {
		return swapExt(srcPath)
	}
	return filepath.Join(c.cfg.OutDir, swapExt(rel))
}

// ConvertBatch converts each source path, printing per-file status to w and
// returning a summary. Cancelling ctx stops the batch before the next file.
func (c *Converter) ConvertBatch(ctx context.Context, srcPaths []string, w io.Writer) BatchResult {
	rels := make([]string, len(srcPaths))
	for i, p := range srcPaths {
		rels[i] = filepath.Base(p)
	}
	return c.convertAll(ctx, srcPaths, rels, w)
}

// ConvertDir converts every file under root matching the configured pattern.
// Notebooks mirror the directory layout beneath OutDir.
func (c *Converter) ConvertDir(ctx context.Context, root string, w io.Writer) (BatchResult, error) {
	matches, err := doublestar.Glob(os.DirFS(root), c.cfg.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return BatchResult{}, fmt.Errorf("matching %q under %s: %w", c.cfg.Pattern, root, err)
	}
	if len(matches) == 0 {
		fmt.Fprintf(w, "no files matching %q under %s\n", c.cfg.Pattern, root)
	}

	srcPaths := make([]string, len(matches))
	rels := make([]string, len(matches))
	for i, m := range matches {
		rels[i] = filepath.FromSlash(m)
		srcPaths[i] = filepath.Join(root, rels[i])
	}
	return c.convertAll(ctx, srcPaths, rels, w), nil
}

func (c *Converter) convertAll(ctx context.Context, srcPaths, rels []string, w io.Writer) BatchResult {
	var result BatchResult
	for i, p := range srcPaths {
		if ctx.Err() != nil {
			break
		}
		switch c.ConvertFile(ctx, p, rels[i], w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

func (c *Converter) warnUnterminated(srcPath string, res Result) {
	if res.Unterminated {
		c.logger.Warn("code fence not closed before end of document", "source", srcPath)
	}
}

// record writes a history entry. Recording failures are logged, not
// returned: the notebook has already been written.
func (c *Converter) record(ctx context.Context, srcPath, outPath string, res Result) {
	if c.recorder == nil {
		return
	}
	rec := types.ConversionRecord{
		RunID:        c.runID,
		SourcePath:   srcPath,
		OutputPath:   outPath,
		Digest:       res.Digest,
		Cells:        res.Cells,
		CodeCells:    res.CodeCells,
		Unterminated: res.Unterminated,
		ConvertedAt:  time.Now().UTC(),
	}
	if err := c.recorder.Record(ctx, rec); err != nil {
		c.logger.Error("recording conversion", "source", srcPath, "error", err)
	}
}

// SplitLines splits text into lines that keep their "\n" terminators. A
// final line without a terminator is kept as is; empty text has no lines.
func SplitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func swapExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + notebookExt
}

func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
