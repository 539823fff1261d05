package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabled(t *testing.T) {
	t.Parallel()

	var (
		e Extractor = Disabled{}
		m Embedder  = Disabled{}
	)

	_, err := e.ExtractSkills(context.Background(), "python")
	assert.True(t, errors.Is(err, ErrDisabled))

	_, err = m.Embed(context.Background(), "python")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestKeywordExtractor(t *testing.T) {
	t.Parallel()

	var e Extractor = NewKeywordExtractor(nil)
	got, err := e.ExtractSkills(context.Background(), "We build REST services in Python and Django on AWS.")
	require.NoError(t, err)

	assert.Contains(t, got, "Python")
	assert.Contains(t, got, "Django")
	assert.Contains(t, got, "AWS")
	assert.NotContains(t, got, "We")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.ExtractSkills(ctx, "python")
	assert.ErrorIs(t, err, context.Canceled)
}
