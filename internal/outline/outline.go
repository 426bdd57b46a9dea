// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline extracts section headings from prose blocks.
package outline

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/md2ipynb/pkg/types"
)

// parser uses the CommonMark defaults; no extensions change heading syntax.
var parser = goldmark.New().Parser()

// Headings returns the ATX and setext headings in lines, in document order.
// Inline markup is reduced to its text.
func Headings(lines []string) []types.Heading {
	src := []byte(strings.Join(lines, ""))
	doc := parser.Parse(text.NewReader(src))

	var headings []types.Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		headings = append(headings, types.Heading{
			Level: h.Level,
			Text:  strings.TrimSpace(string(plainText(h, src))),
		})
	}
	return headings
}

// plainText concatenates the text segments below n.
func plainText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}

// Document returns the headings of every prose block in blocks, keyed by
// block index. Blocks without headings are absent.
func Document(blocks []types.Block) map[int][]types.Heading {
	out := make(map[int][]types.Heading)
	for i, b := range blocks {
		if b.IsCode() {
			continue
		}
		if hs := Headings(b.Lines); len(hs) > 0 {
			out[i] = hs
		}
	}
	return out
}
