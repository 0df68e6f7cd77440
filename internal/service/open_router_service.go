package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fadilmartias/internhub/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterService(cfg *config.OpenRouterConfig) *OpenRouterService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(90 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})

	return &OpenRouterService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		client: client,
	}
}

// Generate sends a single chat completion. The schema, if any, is inlined
// into the prompt since the upstream model may not honour structured output.
func (s *OpenRouterService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if s.APIKey == "" {
		return "", ErrNotConfigured
	}
	if len(req.Media) > 0 {
		return "", ErrMediaUnsupported
	}

	prompt := req.Prompt
	body := map[string]any{
		"model": s.Model,
	}
	if req.Schema != nil {
		schemaJSON, err := json.Marshal(req.Schema)
		if err != nil {
			return "", fmt.Errorf("marshal schema: %w", err)
		}
		prompt += "\n\nReturn your answer STRICTLY as one JSON object, without markdown, matching this schema:\n" + string(schemaJSON)
		body["response_format"] = map[string]string{"type": "json_object"}
	}
	body["messages"] = []map[string]string{
		{"role": "user", "content": prompt},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		log.Printf("OpenRouter returned HTTP %d: %s", resp.StatusCode(), msg)
		return "", fmt.Errorf("openrouter HTTP %d: %s", resp.StatusCode(), msg)
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
