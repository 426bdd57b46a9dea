// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shared between the segmenter, the renderer,
// and the conversion stages.
package types

// BlockKind distinguishes prose from code in a segmented document.
type BlockKind string

const (
	BlockProse BlockKind = "prose"
	BlockCode  BlockKind = "code"
)

// Block is a run of input lines classified uniformly as prose or code.
// Lines keep their original terminators. Fence delimiter lines are never
// part of Lines.
type Block struct {
	// Kind is either BlockProse or BlockCode.
	Kind BlockKind `json:"kind" yaml:"kind"`

	// Lines is the block content in document order.
	Lines []string `json:"lines" yaml:"lines"`

	// StartLine is the 1-based input line number of the first content line,
	// or of the position the block would start at when it is empty.
	StartLine int `json:"start_line" yaml:"start_line"`

	// Terminated reports whether a code block ended at a closing fence.
	// It is always true for prose blocks.
	Terminated bool `json:"terminated" yaml:"terminated"`
}

// IsCode reports whether b is a code block.
func (b Block) IsCode() bool {
	return b.Kind == BlockCode
}

// Heading is one ATX or setext heading found in a prose block.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// BlockSummary describes one block for inspection without its full content.
type BlockSummary struct {
	Index          int       `json:"index" yaml:"index"`
	Kind           BlockKind `json:"kind" yaml:"kind"`
	StartLine      int       `json:"start_line" yaml:"start_line"`
	LineCount      int       `json:"line_count" yaml:"line_count"`
	ExecutionCount int       `json:"execution_count,omitempty" yaml:"execution_count,omitempty"`
	Unterminated   bool      `json:"unterminated,omitempty" yaml:"unterminated,omitempty"`
	Headings       []Heading `json:"headings,omitempty" yaml:"headings,omitempty"`
}
