// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits a document's lines into an ordered sequence of
// prose and code blocks delimited by fenced code markers.
//
// A code block opens at a line whose trimmed form starts with "```" followed
// by the configured language tag, and closes at a line whose trimmed form is
// exactly "```". Fences for any other language, and bare fences met outside a
// code block, are ordinary prose. A code block left open at end of input is
// closed there.
package segment

import (
	"strings"

	"github.com/pdiddy/md2ipynb/pkg/types"
)

// fence is the three-backtick delimiter shared by open and close markers.
const fence = "```"

// Segmenter partitions line sequences for one fence language.
type Segmenter struct {
	open string
}

// New returns a Segmenter whose code blocks open at "```"+lang. An empty
// lang selects types.DefaultLang.
func New(lang string) *Segmenter {
	if lang == "" {
		lang = types.DefaultLang
	}
	return &Segmenter{open: fence + lang}
}

// IsCodeOpen reports whether line opens a code block.
func (s *Segmenter) IsCodeOpen(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), s.open)
}

// IsCodeClose reports whether line closes an open code block.
func IsCodeClose(line string) bool {
	return strings.TrimSpace(line) == fence
}

// Segment partitions lines into blocks. It never fails: every finite input,
// including an empty one, yields a block sequence. Fence lines are dropped
// from block content; all other lines appear in exactly one block, in order.
func (s *Segmenter) Segment(lines []string) []types.Block {
	blocks := []types.Block{}
	i := 0
	for i < len(lines) {
		if s.IsCodeOpen(lines[i]) {
			var b types.Block
			b, i = s.scanCode(lines, i+1)
			blocks = append(blocks, b)
			continue
		}
		var b types.Block
		b, i = s.scanProse(lines, i)
		blocks = append(blocks, b)
	}
	return blocks
}

// scanCode collects a code block starting just after its opening fence. It
// returns the block and the index following the closing fence, or len(lines)
// when the fence is never closed.
func (s *Segmenter) scanCode(lines []string, start int) (types.Block, int) {
	end := start
	for end < len(lines) && !IsCodeClose(lines[end]) {
		end++
	}
	b := types.Block{
		Kind:       types.BlockCode,
		Lines:      lines[start:end:end],
		StartLine:  start + 1,
		Terminated: end < len(lines),
	}
	if b.Terminated {
		end++
	}
	return b, end
}

// scanProse collects prose up to, but not including, the next opening fence.
func (s *Segmenter) scanProse(lines []string, start int) (types.Block, int) {
	end := start
	for end < len(lines) && !s.IsCodeOpen(lines[end]) {
		end++
	}
	return types.Block{
		Kind:       types.BlockProse,
		Lines:      lines[start:end:end],
		StartLine:  start + 1,
		Terminated: true,
	}, end
}

// Segment partitions lines using the default language tag.
func Segment(lines []string) []types.Block {
	return New("").Segment(lines)
}
