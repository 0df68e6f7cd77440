package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) Generate(context.Context, GenerateRequest) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestFallbackGenerator_FirstSuccessWins(t *testing.T) {
	first := &stubGenerator{text: "primary"}
	second := &stubGenerator{text: "secondary"}

	text, err := NewFallbackGenerator(first, second).Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "primary", text)
	assert.Equal(t, 0, second.calls)
}

func TestFallbackGenerator_FallsThrough(t *testing.T) {
	first := &stubGenerator{err: errors.New("quota exhausted")}
	second := &stubGenerator{text: "secondary"}

	text, err := NewFallbackGenerator(first, second).Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "secondary", text)
	assert.Equal(t, 1, first.calls)
}

func TestFallbackGenerator_AllFail(t *testing.T) {
	first := &stubGenerator{err: errors.New("boom")}
	second := &stubGenerator{err: ErrMediaUnsupported}

	_, err := NewFallbackGenerator(first, second).Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMediaUnsupported)
	assert.Contains(t, err.Error(), "boom")
}

func TestFallbackGenerator_Empty(t *testing.T) {
	_, err := NewFallbackGenerator().Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
