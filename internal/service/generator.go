package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

var (
	ErrNotConfigured    = errors.New("generator not configured")
	ErrMediaUnsupported = errors.New("generator does not accept media input")
)

// Media is an inline file sent alongside the prompt.
type Media struct {
	MIMEType string
	Data     []byte
}

type GenerateRequest struct {
	Prompt string
	// Schema, when set, asks for a JSON response of that shape.
	Schema *genai.Schema
	Media  []Media
}

type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// FallbackGenerator tries each generator in order until one succeeds.
type FallbackGenerator struct {
	generators []Generator
}

func NewFallbackGenerator(generators ...Generator) *FallbackGenerator {
	return &FallbackGenerator{generators: generators}
}

func (f *FallbackGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if len(f.generators) == 0 {
		return "", ErrNotConfigured
	}

	var errs []string
	var lastErr error
	for i, g := range f.generators {
		text, err := g.Generate(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err
		errs = append(errs, err.Error())
		if ctx.Err() != nil {
			break
		}
		if i < len(f.generators)-1 {
			log.Printf("Generator %d failed, trying next: %v", i+1, err)
		}
	}
	return "", fmt.Errorf("all generators failed (%s): %w", strings.Join(errs, "; "), lastErr)
}
