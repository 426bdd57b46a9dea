// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/md2ipynb/pkg/types"
)

// lines splits s into lines that keep their "\n" terminators.
func lines(s string) []string {
	out := strings.SplitAfter(s, "\n")
	if out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func prose(start int, ls ...string) types.Block {
	return types.Block{Kind: types.BlockProse, Lines: ls, StartLine: start, Terminated: true}
}

func code(start int, terminated bool, ls ...string) types.Block {
	if ls == nil {
		ls = []string{}
	}
	return types.Block{Kind: types.BlockCode, Lines: ls, StartLine: start, Terminated: terminated}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []types.Block
	}{
		{
			name:  "empty input",
			input: nil,
			want:  []types.Block{},
		},
		{
			name:  "prose only",
			input: []string{"# Title\n", "Some text.\n"},
			want:  []types.Block{prose(1, "# Title\n", "Some text.\n")},
		},
		{
			name:  "prose code prose",
			input: []string{"# Title\n", "```python\n", "x = 1\n", "```\n", "More text.\n"},
			want: []types.Block{
				prose(1, "# Title\n"),
				code(3, true, "x = 1\n"),
				prose(5, "More text.\n"),
			},
		},
		{
			name:  "consecutive code fences",
			input: []string{"```python\n", "a = 1\n", "```\n", "```python\n", "b = 2\n", "```\n"},
			want: []types.Block{
				code(2, true, "a = 1\n"),
				code(5, true, "b = 2\n"),
			},
		},
		{
			name:  "empty code block",
			input: []string{"```python\n", "```\n"},
			want:  []types.Block{code(2, true)},
		},
		{
			name:  "unterminated fence runs to end of input",
			input: []string{"intro\n", "```python\n", "x = 1\n", "y = 2"},
			want: []types.Block{
				prose(1, "intro\n"),
				code(3, false, "x = 1\n", "y = 2"),
			},
		},
		{
			name:  "unterminated fence with no content",
			input: []string{"```python"},
			want:  []types.Block{code(2, false)},
		},
		{
			name:  "bare fence outside code is prose",
			input: []string{"text\n", "```\n", "plain\n", "```\n"},
			want:  []types.Block{prose(1, "text\n", "```\n", "plain\n", "```\n")},
		},
		{
			name:  "other language fence is prose",
			input: []string{"```bash\n", "ls\n", "```\n"},
			want:  []types.Block{prose(1, "```bash\n", "ls\n", "```\n")},
		},
		{
			name:  "other language fence inside code is content",
			input: []string{"```python\n", "```bash\n", "```\n"},
			want:  []types.Block{code(2, true, "```bash\n")},
		},
		{
			name:  "indented fences are recognized after trimming",
			input: []string{"  ```python\n", "x\n", "  ```  \n"},
			want:  []types.Block{code(2, true, "x\n")},
		},
		{
			name:  "close marker with trailing tag does not close",
			input: []string{"```python\n", "```python\n", "```\n"},
			want:  []types.Block{code(2, true, "```python\n")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSegmenter_Lang(t *testing.T) {
	s := New("go")
	got := s.Segment([]string{"```python\n", "```go\n", "fmt.Println()\n", "```\n"})
	require.Len(t, got, 2)
	assert.Equal(t, types.BlockProse, got[0].Kind)
	assert.Equal(t, []string{"```python\n"}, got[0].Lines)
	assert.Equal(t, types.BlockCode, got[1].Kind)
	assert.Equal(t, []string{"fmt.Println()\n"}, got[1].Lines)
}

func TestSegment_CodeBlockCount(t *testing.T) {
	input := lines("a\n```python\n1\n```\nb\n```python\n```python\n```\n```\nc\n```python\n2\n")
	blocks := Segment(input)

	codeBlocks := 0
	for _, b := range blocks {
		if b.IsCode() {
			codeBlocks++
		}
	}
	// A fence opened inside an open block does not count.
	assert.Equal(t, 3, codeBlocks)
}

func TestSegment_NoAdjacentProse(t *testing.T) {
	input := lines("a\n```python\n1\n```\nb\n```\nc\n```python\n2\n```\n```python\n3\n```\nd\n")
	blocks := Segment(input)
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Kind == types.BlockProse {
			assert.NotEqual(t, types.BlockProse, blocks[i-1].Kind, "adjacent prose blocks at %d", i)
		}
	}
}

func TestSegment_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"# Title\n```python\nx = 1\n```\nMore text.\n",
		"```python\na\n```\n```python\nb\n```\n",
		"text\n```\nnot code\n```\n```python\nopen\nforever",
		"```python\n```\n\n\n```python\n",
	}

	for _, in := range inputs {
		src := lines(in)
		rebuilt := []string{}
		for _, b := range Segment(src) {
			if b.IsCode() {
				rebuilt = append(rebuilt, src[b.StartLine-2])
			}
			rebuilt = append(rebuilt, b.Lines...)
			if b.IsCode() && b.Terminated {
				rebuilt = append(rebuilt, src[b.StartLine-1+len(b.Lines)])
			}
		}
		assert.Equal(t, src, rebuilt, "input %q", in)
	}
}

func TestIsCodeClose(t *testing.T) {
	assert.True(t, IsCodeClose("```"))
	assert.True(t, IsCodeClose("```\n"))
	assert.True(t, IsCodeClose("\t```  \r\n"))
	assert.False(t, IsCodeClose("```python\n"))
	assert.False(t, IsCodeClose("````\n"))
	assert.False(t, IsCodeClose("x ```\n"))
}
