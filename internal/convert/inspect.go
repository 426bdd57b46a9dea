// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/md2ipynb/internal/notebook"
	"github.com/pdiddy/md2ipynb/internal/outline"
	"github.com/pdiddy/md2ipynb/pkg/types"
)

// Inspect segments the document read from r and summarizes each block:
// its kind, where it starts, how many lines it holds, the execution count
// its cell would receive, and the headings of prose blocks.
func (c *Converter) Inspect(r io.Reader) ([]types.BlockSummary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	blocks := c.seg.Segment(SplitLines(string(data)))
	cells := notebook.Render(blocks)
	headings := outline.Document(blocks)

	summaries := make([]types.BlockSummary, len(blocks))
	for i, b := range blocks {
		summaries[i] = types.BlockSummary{
			Index:          i,
			Kind:           b.Kind,
			StartLine:      b.StartLine,
			LineCount:      len(b.Lines),
			ExecutionCount: cells[i].ExecutionCount,
			Unterminated:   !b.Terminated,
			Headings:       headings[i],
		}
	}
	return summaries, nil
}

// WriteInspectYAML writes summaries to w as a YAML sequence.
func WriteInspectYAML(w io.Writer, summaries []types.BlockSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summaries); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
