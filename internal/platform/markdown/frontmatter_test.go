package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type meta struct {
	ID    string         `yaml:"id"`
	Count int            `yaml:"count"`
	Tally map[string]int `yaml:"tally"`
}

func TestRenderFrontmatter(t *testing.T) {
	rendered, err := RenderFrontmatter(meta{ID: "a", Count: 2, Tally: map[string]int{"x": -1}}, "# Title\n")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(rendered, "---\nid: a\ncount: 2\n"))

	raw, body, ok := strings.Cut(strings.TrimPrefix(rendered, "---\n"), "\n---\n")
	require.True(t, ok)
	assert.Equal(t, "\n# Title\n", body)

	var got meta
	require.NoError(t, yaml.Unmarshal([]byte(raw), &got))
	assert.Equal(t, -1, got.Tally["x"])
}

func TestRenderFrontmatterKeepsLeadingBlankLine(t *testing.T) {
	rendered, err := RenderFrontmatter(map[string]string{"id": "b"}, "\nbody")
	require.NoError(t, err)
	assert.Equal(t, "---\nid: b\n---\n\nbody", rendered)
}
