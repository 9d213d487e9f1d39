package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

func TestChatSendsSystemAndUserMessages(t *testing.T) {
	var captured struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  draft copy  "}}]}`))
	}))
	defer server.Close()

	client := New(Config{APIKey: "k", BaseURL: server.URL, ChatModel: "llama-3.3-70b-versatile"})
	out, err := client.Chat(context.Background(), "be on brand", "write a tagline", 0.5)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if out != "draft copy" {
		t.Fatalf("expected trimmed content, got %q", out)
	}
	if captured.Model != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected model %q", captured.Model)
	}
	if captured.Temperature != 0.5 {
		t.Fatalf("unexpected temperature %v", captured.Temperature)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Content != "write a tagline" {
		t.Fatalf("unexpected messages: %+v", captured.Messages)
	}
}

func TestChatWithoutAPIKeyFailsFast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("request must not reach the provider without a credential")
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, ChatModel: "m"})
	_, err := client.Chat(context.Background(), "s", "u", 0.5)
	if !domain.IsKind(err, domain.ErrMissingCredential) {
		t.Fatalf("expected missing credential error, got %v", err)
	}
}

func TestChatWrapsTerminalProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := New(Config{APIKey: "bad", BaseURL: server.URL, ChatModel: "m"})
	_, err := client.Chat(context.Background(), "s", "u", 0.5)
	if !domain.IsKind(err, domain.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestEmbedChecksVectorDimension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2]}]}`))
	}))
	defer server.Close()

	embedder := NewEmbedder(EmbedderConfig{APIKey: "k", BaseURL: server.URL, Model: "text-embedding-3-small", Dimensions: 3})
	_, err := embedder.Embed(context.Background(), []string{"hello"})
	if err == nil {
		t.Fatalf("expected dimension mismatch error")
	}
}

func TestEmbedQueryReturnsFirstVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}))
	defer server.Close()

	embedder := NewEmbedder(EmbedderConfig{APIKey: "k", BaseURL: server.URL, Model: "text-embedding-3-small", Dimensions: 3})
	vec, err := embedder.EmbedQuery(context.Background(), "query")
	if err != nil {
		t.Fatalf("EmbedQuery() error = %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.1 {
		t.Fatalf("unexpected vector %v", vec)
	}
}

func TestEmbedEmptyInputSkipsProvider(t *testing.T) {
	embedder := NewEmbedder(EmbedderConfig{APIKey: "k", Model: "m", Dimensions: 3})
	vectors, err := embedder.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if vectors != nil {
		t.Fatalf("expected nil vectors for empty input")
	}
}
