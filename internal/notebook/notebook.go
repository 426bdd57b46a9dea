// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook renders segmented blocks into notebook cells and writes
// the nbformat 4 JSON document.
package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/md2ipynb/pkg/types"
)

// Render turns blocks into cells in the same order. Code cells receive a
// 1-based execution count that advances only on code blocks; markdown cells
// carry none.
func Render(blocks []types.Block) []types.Cell {
	cells := make([]types.Cell, 0, len(blocks))
	count := 0
	for _, b := range blocks {
		switch b.Kind {
		case types.BlockCode:
			count++
			cells = append(cells, types.Cell{
				CellType:       types.CellCode,
				ExecutionCount: count,
				Source:         b.Lines,
			})
		default:
			cells = append(cells, types.Cell{
				CellType: types.CellMarkdown,
				Source:   b.Lines,
			})
		}
	}
	return cells
}

// New wraps cells in the document envelope for the given kernel.
func New(cells []types.Cell, kernel types.KernelConfig) types.Notebook {
	if cells == nil {
		cells = []types.Cell{}
	}
	return types.Notebook{
		Cells:         cells,
		Metadata:      Metadata(kernel),
		NBFormat:      types.NotebookFormat,
		NBFormatMinor: types.NotebookFormatMinor,
	}
}

// Metadata builds the static kernel and language descriptors. Empty kernel
// fields take the Python 2 defaults.
func Metadata(kernel types.KernelConfig) types.NotebookMetadata {
	k := kernel.WithDefaults()
	major := majorVersion(k.Version)
	return types.NotebookMetadata{
		KernelSpec: types.KernelSpec{
			DisplayName: k.DisplayName,
			Language:    k.Language,
			Name:        k.Name,
		},
		LanguageInfo: types.LanguageInfo{
			CodeMirrorMode: types.CodeMirrorMode{
				Name:    "ipython",
				Version: major,
			},
			FileExtension:     ".py",
			MIMEType:          "text/x-python",
			Name:              k.Language,
			NBConvertExporter: "python",
			PygmentsLexer:     fmt.Sprintf("ipython%d", major),
			Version:           k.Version,
		},
	}
}

// majorVersion returns the leading integer of a dotted version, or 2 when
// it cannot be parsed.
func majorVersion(v string) int {
	head, _, _ := strings.Cut(v, ".")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 2
	}
	return n
}

// Encode writes nb as JSON to w. The whole document is encoded in memory
// first so a failure never leaves partial output. An empty indent produces
// compact JSON.
func Encode(w io.Writer, nb types.Notebook, indent string) error {
	data, err := Marshal(nb, indent)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing notebook: %w", err)
	}
	return nil
}

// Marshal returns the JSON encoding of nb followed by a newline. HTML
// characters in cell text are kept literal.
func Marshal(nb types.Notebook, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(nb); err != nil {
		return nil, fmt.Errorf("encoding notebook: %w", err)
	}
	return buf.Bytes(), nil
}
