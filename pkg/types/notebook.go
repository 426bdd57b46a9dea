// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
)

// CellType is the notebook cell_type value.
type CellType string

const (
	CellCode     CellType = "code"
	CellMarkdown CellType = "markdown"
)

// NotebookFormat and NotebookFormatMinor are the nbformat version numbers
// written into every document.
const (
	NotebookFormat      = 4
	NotebookFormatMinor = 0
)

// Cell is one notebook cell derived from a Block. ExecutionCount is only
// meaningful for code cells and is zero for markdown cells.
type Cell struct {
	CellType       CellType `json:"cell_type" yaml:"cell_type"`
	ExecutionCount int      `json:"execution_count,omitempty" yaml:"execution_count,omitempty"`
	Source         []string `json:"source" yaml:"source"`
}

type codeCellJSON struct {
	CellType       CellType         `json:"cell_type"`
	ExecutionCount int              `json:"execution_count"`
	Metadata       codeCellMetadata `json:"metadata"`
	Outputs        []any            `json:"outputs"`
	Source         []string         `json:"source"`
}

type codeCellMetadata struct {
	Collapsed bool `json:"collapsed"`
}

type markdownCellJSON struct {
	CellType CellType `json:"cell_type"`
	Metadata struct{} `json:"metadata"`
	Source   []string `json:"source"`
}

// MarshalJSON encodes the cell in nbformat 4 shape. Code cells carry
// execution_count, collapsed metadata, and an empty outputs list; markdown
// cells carry empty metadata only.
func (c Cell) MarshalJSON() ([]byte, error) {
	source := c.Source
	if source == nil {
		source = []string{}
	}
	if c.CellType == CellCode {
		return marshalRaw(codeCellJSON{
			CellType:       CellCode,
			ExecutionCount: c.ExecutionCount,
			Metadata:       codeCellMetadata{Collapsed: true},
			Outputs:        []any{},
			Source:         source,
		})
	}
	return marshalRaw(markdownCellJSON{
		CellType: CellMarkdown,
		Source:   source,
	})
}

// Notebook is the document envelope serialized as .ipynb JSON.
type Notebook struct {
	Cells         []Cell           `json:"cells"`
	Metadata      NotebookMetadata `json:"metadata"`
	NBFormat      int              `json:"nbformat"`
	NBFormatMinor int              `json:"nbformat_minor"`
}

// NotebookMetadata carries the kernel and language descriptors.
type NotebookMetadata struct {
	KernelSpec   KernelSpec   `json:"kernelspec"`
	LanguageInfo LanguageInfo `json:"language_info"`
}

// KernelSpec identifies the kernel a viewer should start.
type KernelSpec struct {
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
	Name        string `json:"name"`
}

// LanguageInfo describes the notebook language to viewers and exporters.
type LanguageInfo struct {
	CodeMirrorMode    CodeMirrorMode `json:"codemirror_mode"`
	FileExtension     string         `json:"file_extension"`
	MIMEType          string         `json:"mimetype"`
	Name              string         `json:"name"`
	NBConvertExporter string         `json:"nbconvert_exporter"`
	PygmentsLexer     string         `json:"pygments_lexer"`
	Version           string         `json:"version"`
}

// CodeMirrorMode selects the editor highlighting mode.
type CodeMirrorMode struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// marshalRaw encodes v without HTML escaping. Escapes applied here would
// survive the outer encoder, so cell text must be kept literal at this level.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
