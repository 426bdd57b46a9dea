// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one source document.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// ConversionRecord describes one completed conversion as stored in the
// history log.
type ConversionRecord struct {
	// RunID groups the records written by a single CLI invocation.
	RunID string `json:"run_id" yaml:"run_id"`

	// SourcePath is the markdown document that was converted.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputPath is the notebook file written, or "-" for standard output.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Digest is the hex BLAKE3 digest of the source bytes.
	Digest string `json:"digest" yaml:"digest"`

	// Cells is the total number of cells in the notebook.
	Cells int `json:"cells" yaml:"cells"`

	// CodeCells is the number of code cells, equal to the last execution count.
	CodeCells int `json:"code_cells" yaml:"code_cells"`

	// Unterminated is true when the document ended inside an open code fence.
	Unterminated bool `json:"unterminated" yaml:"unterminated"`

	// ConvertedAt is when the notebook was produced.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
