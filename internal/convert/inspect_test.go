// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/md2ipynb/pkg/types"
)

func TestInspect(t *testing.T) {
	doc := "# Lists\n\nIntro.\n```python\na = [1]\nb = a\n```\n## Slicing\n```python\na[0]\n"
	got, err := New(types.ConversionConfig{}).Inspect(strings.NewReader(doc))
	require.NoError(t, err)

	want := []types.BlockSummary{
		{Index: 0, Kind: types.BlockProse, StartLine: 1, LineCount: 3, Headings: []types.Heading{{Level: 1, Text: "Lists"}}},
		{Index: 1, Kind: types.BlockCode, StartLine: 5, LineCount: 2, ExecutionCount: 1},
		{Index: 2, Kind: types.BlockProse, StartLine: 8, LineCount: 1, Headings: []types.Heading{{Level: 2, Text: "Slicing"}}},
		{Index: 3, Kind: types.BlockCode, StartLine: 10, LineCount: 1, ExecutionCount: 2, Unterminated: true},
	}
	assert.Equal(t, want, got)
}

func TestWriteInspectYAML(t *testing.T) {
	summaries, err := New(types.ConversionConfig{}).Inspect(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteInspectYAML(&buf, summaries))

	var back []types.BlockSummary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, summaries, back)
	assert.Contains(t, buf.String(), "kind: code")
	assert.Contains(t, buf.String(), "execution_count: 1")
}
