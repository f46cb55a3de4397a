package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
	"github.com/elijah-alonzo/ai-poc/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterRAGMetrics()
	os.Exit(m.Run())
}

// chatCompletionResponse mirrors the OpenAI-compatible chat completion response.
type chatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var resp chatCompletionResponse
		resp.Object = "chat.completion"
		if content != "" {
			resp.Choices = append(resp.Choices, struct {
				Index   int `json:"index"`
				Message struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"message"`
				FinishReason string `json:"finish_reason"`
			}{})
			resp.Choices[0].Message.Role = "assistant"
			resp.Choices[0].Message.Content = content
			resp.Choices[0].FinishReason = "stop"
		}
		resp.Usage.PromptTokens = 40
		resp.Usage.CompletionTokens = 20
		resp.Usage.TotalTokens = 60

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerator_Complete(t *testing.T) {
	server := completionServer(t, "She works on distributed systems.")
	defer server.Close()

	gen := NewGenerator(&Config{APIKey: "test-key", BaseURL: server.URL})

	text, err := gen.Complete(context.Background(), domain.GenerationRequest{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: "answer only from context"},
			{Role: domain.RoleUser, Content: "what does she do?"},
		},
		Model:       "test-model",
		Temperature: 0.2,
		MaxTokens:   512,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "She works on distributed systems." {
		t.Errorf("unexpected completion: %q", text)
	}
}

func TestGenerator_EmptyCompletionIsRecoverable(t *testing.T) {
	server := completionServer(t, "")
	defer server.Close()

	gen := NewGenerator(&Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := gen.Complete(context.Background(), domain.GenerationRequest{
		Messages: []domain.Message{{Role: domain.RoleUser, Content: "q"}},
		Model:    "test-model",
	})
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerator_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail":"rate limit exceeded"}`))
	}))
	defer server.Close()

	gen := NewGenerator(&Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := gen.Complete(context.Background(), domain.GenerationRequest{
		Messages: []domain.Message{{Role: domain.RoleUser, Content: "q"}},
		Model:    "test-model",
	})
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
}
