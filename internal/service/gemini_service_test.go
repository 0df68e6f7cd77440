package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestGemini() *GeminiService {
	return &GeminiService{
		Model:             "test-model",
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          5 * time.Second,
		RequestTimeout:    time.Second,
		CircuitCooldown:   time.Minute,
		circuitBreakerMax: 2,
		now:               time.Now,
	}
}

func TestGeminiService_IsRetryableError(t *testing.T) {
	s := newTestGemini()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), false},
		{"rate limited", genai.APIError{Code: 429}, true},
		{"server error", genai.APIError{Code: 503}, true},
		{"bad request", genai.APIError{Code: 400}, false},
		{"connection reset", errors.New("read tcp: connection reset by peer"), true},
		{"other", errors.New("invalid argument"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.isRetryableError(tt.err))
		})
	}
}

func TestGeminiService_BackoffIsCapped(t *testing.T) {
	s := newTestGemini()

	assert.Less(t, s.calculateBackoff(1), s.calculateBackoff(2))
	assert.LessOrEqual(t, s.calculateBackoff(10), s.MaxDelay)
}

func TestGeminiService_CircuitBreaker(t *testing.T) {
	s := newTestGemini()

	s.recordFailure()
	s.recordFailure()
	count, open := s.GetCircuitBreakerStatus()
	assert.Equal(t, 2, count)
	assert.True(t, open)

	_, err := s.Generate(context.Background(), GenerateRequest{Prompt: "hello"})
	assert.ErrorContains(t, err, "circuit breaker open")

	s.ResetCircuitBreaker()
	_, open = s.GetCircuitBreakerStatus()
	assert.False(t, open)
}

func TestGeminiService_RejectsEmptyPrompt(t *testing.T) {
	_, err := newTestGemini().Generate(context.Background(), GenerateRequest{Prompt: "  "})
	assert.ErrorContains(t, err, "prompt cannot be empty")
}

func TestGeminiService_CircuitBreakerHalfOpensAfterCooldown(t *testing.T) {
	s := newTestGemini()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.recordFailure()
	s.recordFailure()
	assert.Error(t, s.checkCircuit())

	now = now.Add(s.CircuitCooldown)
	require.NoError(t, s.checkCircuit(), "trial call after cooldown")
	assert.Error(t, s.checkCircuit(), "only one trial at a time")

	s.recordFailure()
	assert.Error(t, s.checkCircuit(), "failed trial re-opens the breaker")

	now = now.Add(s.CircuitCooldown)
	require.NoError(t, s.checkCircuit())
	s.recordSuccess()
	_, open := s.GetCircuitBreakerStatus()
	assert.False(t, open)
	assert.NoError(t, s.checkCircuit())
}

func TestGeminiService_RejectedCallsDoNotCount(t *testing.T) {
	s := newTestGemini()
	s.recordRejected()
	s.recordRejected()
	s.recordRejected()

	count, open := s.GetCircuitBreakerStatus()
	assert.Equal(t, 0, count)
	assert.False(t, open)
}

func TestGeminiService_ClientErrorsKeepBreakerClosed(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) <= 5 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"invalid media part","status":"INVALID_ARGUMENT"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	require.NoError(t, err)

	s := newTestGemini()
	s.Client = client

	for i := 0; i < 5; i++ {
		_, err := s.Generate(context.Background(), GenerateRequest{Prompt: "hello"})
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "circuit breaker open")
	}

	out, err := s.Generate(context.Background(), GenerateRequest{Prompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.EqualValues(t, 6, calls.Load())
}
