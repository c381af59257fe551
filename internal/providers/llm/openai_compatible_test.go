package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/duetsim/duet/internal/config"
	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/pkg/retry"
)

func fastRetrier() *retry.Retrier {
	return retry.NewRetrier(&retry.Config{
		MaxRetries:    2,
		BackoffFactor: 2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	})
}

func TestOpenAICompatibleChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}

		var payload struct {
			Model    string         `json:"model"`
			Messages []core.Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.Model != "test-model" || len(payload.Messages) != 2 {
			t.Errorf("payload model=%q messages=%d", payload.Model, len(payload.Messages))
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hi there"}},
			},
		})
	}))
	defer server.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Model:      "test-model",
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})

	msg, err := p.Chat(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "hello"},
		{Role: core.RoleAssistant, Content: "yes?"},
	}, nil)
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if msg.Role != core.RoleAssistant || msg.Content != "hi there" {
		t.Errorf("got %+v", msg)
	}
}

func TestOpenAICompatibleRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "recovered"}},
			},
		})
	}))
	defer server.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{BaseURL: server.URL, Model: "m"})
	p.retrier = fastRetrier()

	msg, err := p.Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}}, nil)
	if err != nil {
		t.Fatalf("chat failed after retry: %v", err)
	}
	if msg.Content != "recovered" {
		t.Errorf("content = %q", msg.Content)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hit %d times, want 2", got)
	}
}

func TestOpenAICompatibleDoesNotRetryAuthErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{BaseURL: server.URL, Model: "m"})
	p.retrier = fastRetrier()

	_, err := p.Chat(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}}, nil)
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error %q does not mention status", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}

func TestScriptedPlaysLinesInOrder(t *testing.T) {
	s := NewScripted([]string{"first", "second"})

	for i, want := range []string{"first", "second"} {
		msg, err := s.Chat(context.Background(), nil, nil)
		if err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if msg.Role != core.RoleAssistant || msg.Content != want {
			t.Errorf("line %d = %+v, want %q", i, msg, want)
		}
	}

	if s.Remaining() != 0 {
		t.Errorf("remaining = %d", s.Remaining())
	}
	if _, err := s.Chat(context.Background(), nil, nil); err == nil {
		t.Error("expected error once script is exhausted")
	}
}

func TestNewProviderUnknownVendor(t *testing.T) {
	cfg := &config.LLMConfig{Provider: "mystery", Model: "m"}
	if _, err := NewProvider(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestDynamicProviderSwitchesVendor(t *testing.T) {
	cfg := &config.LLMConfig{Provider: "openrouter", Model: "google/gemma-3-27b-it:free"}

	d, err := NewDynamicProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("initial provider: %v", err)
	}

	// Swapping to a different vendor must not trip the atomic.Value type check.
	if err := d.SetModel(context.Background(), "anthropic/claude-sonnet-4-20250514"); err != nil {
		t.Fatalf("set model: %v", err)
	}
	if got := d.GetModel(); got != "claude-sonnet-4-20250514" {
		t.Errorf("model = %q", got)
	}
	if got := cfg.GetProvider(); got != "anthropic" {
		t.Errorf("provider = %q", got)
	}
}
