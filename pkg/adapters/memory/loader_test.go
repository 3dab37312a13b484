package memory

import (
	"context"
	"testing"

	"github.com/aretw0/cyoa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_FromNode(t *testing.T) {
	root := domain.NewNode("doc", nil,
		domain.NewNode("constant", map[string]string{"name": "a", "value": "1"}),
	)
	loader, err := NewFromNode(root)
	require.NoError(t, err)

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, root, first)

	first.Children[0].Attrs["value"] = "changed"
	second, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", second.Children[0].Attrs["value"], "loads are independent copies")
}

func TestLoader_Errors(t *testing.T) {
	_, err := NewFromNode(nil)
	assert.Error(t, err)

	_, err = NewLoader([]byte("{not json")).Load(context.Background())
	assert.ErrorContains(t, err, "failed to decode document")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewLoader([]byte(`{"tag":"doc"}`)).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
