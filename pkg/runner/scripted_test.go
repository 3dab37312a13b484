package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedPort(t *testing.T) {
	ctx := context.Background()
	p := NewScriptedPort("nope", "2", "Ada")

	idx, err := p.GetAnswer(ctx, "Pick?", []string{"Red", "Green"}, NoAnswer)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, p.Invalid())

	line, err := p.Ask(ctx, "Name?")
	require.NoError(t, err)
	assert.Equal(t, "Ada", line)

	idx, err = p.GetAnswer(ctx, "Sure?", []string{"Yes", "No"}, 0)
	require.NoError(t, err)
	assert.Equal(t, NoAnswer, idx, "exhausted script cancels")

	_, err = p.Ask(ctx, "City?")
	assert.ErrorIs(t, err, ErrNoAnswer)

	assert.Equal(t, []string{"Pick?", "Pick?", "Name?", "Sure?", "City?"}, p.Prompts())
	assert.Zero(t, p.Remaining())
}

func TestScriptedPort_EmptyLineSelectsOnlyOption(t *testing.T) {
	p := NewScriptedPort("", "unused")

	idx, err := p.GetAnswer(context.Background(), "Go on?", []string{"Only"}, NoAnswer)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Zero(t, p.Invalid())
	assert.Equal(t, 1, p.Remaining())
}

func TestScriptedPort_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewScriptedPort("1")
	_, err := p.GetAnswer(ctx, "Pick?", []string{"Red"}, NoAnswer)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, p.Remaining())
}
