package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"text/template"

	"github.com/fadilmartias/internhub/internal/service"
	"github.com/go-playground/validator/v10"
	"google.golang.org/genai"
)

var (
	ErrEmptyResponse = errors.New("model returned an empty response")
	ErrInvalidOutput = errors.New("model output does not match schema")
)

// Error carries a message that is safe to show to the end user.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

func userError(msg string, err error) error {
	return &Error{Message: msg, Err: err}
}

var validate = validator.New()

// Flow pairs a prompt template with a response schema. One Run is one
// model call.
type Flow[In, Out any] struct {
	name   string
	prompt *template.Template
	schema *genai.Schema
	media  func(In) []service.Media
	gen    service.Generator
}

func newFlow[In, Out any](gen service.Generator, name string, schema *genai.Schema) *Flow[In, Out] {
	return &Flow[In, Out]{
		name:   name,
		prompt: catalogue.template(name),
		schema: schema,
		gen:    gen,
	}
}

func (f *Flow[In, Out]) withMedia(fn func(In) []service.Media) *Flow[In, Out] {
	f.media = fn
	return f
}

func (f *Flow[In, Out]) Render(in In) (string, error) {
	var buf bytes.Buffer
	if err := f.prompt.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", f.name, err)
	}
	return buf.String(), nil
}

func (f *Flow[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	var out Out

	prompt, err := f.Render(in)
	if err != nil {
		return out, err
	}
	req := service.GenerateRequest{Prompt: prompt, Schema: f.schema}
	if f.media != nil {
		req.Media = f.media(in)
	}

	text, err := f.gen.Generate(ctx, req)
	if err != nil {
		return out, fmt.Errorf("%s: %w", f.name, err)
	}

	cleaned := CleanJSON(text)
	if cleaned == "" {
		return out, fmt.Errorf("%s: %w", f.name, ErrEmptyResponse)
	}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		log.Printf("[flow:%s] undecodable output: %s", f.name, cleaned)
		return out, fmt.Errorf("%s: %w: %v", f.name, ErrInvalidOutput, err)
	}
	if err := validate.Struct(out); err != nil {
		return out, fmt.Errorf("%s: %w: %v", f.name, ErrInvalidOutput, err)
	}
	return out, nil
}

// CleanJSON strips markdown fences and any prose around the outermost
// JSON object.
func CleanJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		content = content[start : end+1]
	}

	return strings.TrimSpace(content)
}
