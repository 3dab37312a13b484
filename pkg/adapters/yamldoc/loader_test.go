package yamldoc_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/cyoa/pkg/adapters/yamldoc"
	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const story = `
tag: story
children:
  - tag: constant
    attrs: {name: gold, value: 10}
  - tag: random
    attrs: {name: door}
    children:
      - tag: option
        attrs: {value: left, weight: 2}
      - tag: option
        attrs: {value: right}
`

func TestParse(t *testing.T) {
	root, err := yamldoc.Parse([]byte(story))
	require.NoError(t, err)

	assert.Equal(t, "story", root.Tag)
	require.Len(t, root.Children, 2)
	assert.Equal(t, map[string]string{"name": "gold", "value": "10"}, root.Children[0].Attrs)

	random := root.Children[1]
	assert.Equal(t, domain.KindRandom, random.Kind())
	require.Len(t, random.Children, 2)
	assert.Equal(t, "2", random.Children[0].AttrOr("weight", ""))
	assert.Nil(t, random.Children[1].Children)
}

func TestParse_TopLevelSequence(t *testing.T) {
	root, err := yamldoc.Parse([]byte("- tag: constant\n  attrs: {name: a, value: true}\n- tag: constant\n"))
	require.NoError(t, err)

	assert.Equal(t, yamldoc.RootTag, root.Tag)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "true", root.Children[0].AttrOr("value", ""), "YAML booleans are stringified")
}

func TestParse_Errors(t *testing.T) {
	_, err := yamldoc.Parse(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)

	_, err = yamldoc.Parse([]byte("children: []"))
	assert.ErrorContains(t, err, "has no tag")

	_, err = yamldoc.Parse([]byte("tag: [unclosed"))
	assert.ErrorContains(t, err, "parse yaml")
}

func TestLoader(t *testing.T) {
	root, err := yamldoc.NewLoader(strings.NewReader(story)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "story", root.Tag)

	path := filepath.Join(t.TempDir(), "story.yaml")
	require.NoError(t, os.WriteFile(path, []byte(story), 0o644))
	root, err = yamldoc.NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, root.Children, 2)
}
