// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/md2ipynb/pkg/types"
)

func TestRender(t *testing.T) {
	blocks := []types.Block{
		{Kind: types.BlockProse, Lines: []string{"# Title\n"}},
		{Kind: types.BlockCode, Lines: []string{"x = 1\n"}},
		{Kind: types.BlockProse, Lines: []string{"More text.\n"}},
		{Kind: types.BlockCode, Lines: []string{}},
		{Kind: types.BlockCode, Lines: []string{"y = 2\n"}},
	}

	cells := Render(blocks)
	require.Len(t, cells, 5)

	wantTypes := []types.CellType{types.CellMarkdown, types.CellCode, types.CellMarkdown, types.CellCode, types.CellCode}
	wantCounts := []int{0, 1, 0, 2, 3}
	for i, c := range cells {
		assert.Equal(t, wantTypes[i], c.CellType, "cell %d type", i)
		assert.Equal(t, wantCounts[i], c.ExecutionCount, "cell %d execution count", i)
		assert.Equal(t, blocks[i].Lines, c.Source, "cell %d source", i)
	}
}

func TestRender_Empty(t *testing.T) {
	cells := Render(nil)
	assert.NotNil(t, cells)
	assert.Empty(t, cells)
}

func TestRender_ExecutionCountsHaveNoGaps(t *testing.T) {
	var blocks []types.Block
	for i := 0; i < 20; i++ {
		blocks = append(blocks, types.Block{Kind: types.BlockProse, Lines: []string{"p\n"}})
		blocks = append(blocks, types.Block{Kind: types.BlockProse, Lines: []string{"q\n"}})
		blocks = append(blocks, types.Block{Kind: types.BlockCode, Lines: []string{"c\n"}})
	}

	next := 1
	for _, c := range Render(blocks) {
		if c.CellType != types.CellCode {
			continue
		}
		assert.Equal(t, next, c.ExecutionCount)
		next++
	}
	assert.Equal(t, 21, next)
}

func TestMarshal_Shape(t *testing.T) {
	cells := Render([]types.Block{
		{Kind: types.BlockProse, Lines: []string{"a < b & c\n"}},
		{Kind: types.BlockCode, Lines: []string{}},
	})
	data, err := Marshal(New(cells, types.KernelConfig{}), "")
	require.NoError(t, err)

	want := `{"cells":[` +
		`{"cell_type":"markdown","metadata":{},"source":["a < b & c\n"]},` +
		`{"cell_type":"code","execution_count":1,"metadata":{"collapsed":true},"outputs":[],"source":[]}],` +
		`"metadata":{"kernelspec":{"display_name":"Python 2","language":"python","name":"python2"},` +
		`"language_info":{"codemirror_mode":{"name":"ipython","version":2},"file_extension":".py",` +
		`"mimetype":"text/x-python","name":"python","nbconvert_exporter":"python",` +
		`"pygments_lexer":"ipython2","version":"2.7.10"}},` +
		`"nbformat":4,"nbformat_minor":0}` + "\n"
	assert.Equal(t, want, string(data))
}

func TestMarshal_EmptyDocument(t *testing.T) {
	data, err := Marshal(New(nil, types.KernelConfig{}), " ")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, []any{}, doc["cells"])
	assert.EqualValues(t, 4, doc["nbformat"])
	assert.EqualValues(t, 0, doc["nbformat_minor"])
}

func TestMetadata_Kernel(t *testing.T) {
	md := Metadata(types.KernelConfig{DisplayName: "Python 3", Name: "python3", Version: "3.12.1"})
	assert.Equal(t, "Python 3", md.KernelSpec.DisplayName)
	assert.Equal(t, "python3", md.KernelSpec.Name)
	assert.Equal(t, "python", md.KernelSpec.Language)
	assert.Equal(t, 3, md.LanguageInfo.CodeMirrorMode.Version)
	assert.Equal(t, "ipython3", md.LanguageInfo.PygmentsLexer)
	assert.Equal(t, "3.12.1", md.LanguageInfo.Version)
}

func TestMajorVersion(t *testing.T) {
	tests := map[string]int{
		"2.7.10": 2,
		"3.12":   3,
		"3":      3,
		"":       2,
		"dev":    2,
	}
	for in, want := range tests {
		assert.Equal(t, want, majorVersion(in), "version %q", in)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, New(nil, types.KernelConfig{}), ""))
	assert.Contains(t, buf.String(), `"cells":[]`)

	err := Encode(failingWriter{}, New(nil, types.KernelConfig{}), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing notebook")
}
