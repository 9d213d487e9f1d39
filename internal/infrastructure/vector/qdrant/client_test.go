package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

func TestIndexChunksEnsuresCollectionOncePerVectorSize(t *testing.T) {
	var ensureCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/collections/manual_chunks":
			atomic.AddInt32(&ensureCalls, 1)
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPut && r.URL.Path == "/collections/manual_chunks/points":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := New(server.URL, "manual_chunks")
	chunks := []domain.Chunk{{Section: "tone.dos", Text: "a"}, {Section: "tone.donts", Text: "b"}}
	vectors := [][]float32{{0.1, 0.2}, {0.3, 0.4}}

	if err := client.IndexChunks(context.Background(), "manual-1", chunks, vectors); err != nil {
		t.Fatalf("first IndexChunks() error = %v", err)
	}
	if err := client.IndexChunks(context.Background(), "manual-1", chunks, vectors); err != nil {
		t.Fatalf("second IndexChunks() error = %v", err)
	}
	if got := atomic.LoadInt32(&ensureCalls); got != 1 {
		t.Fatalf("expected ensure collection called once, got %d", got)
	}
}

func TestSearchFiltersByManualID(t *testing.T) {
	var searchBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/collections/manual_chunks/points/search" {
			_ = json.NewDecoder(r.Body).Decode(&searchBody)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"result":[{"score":0.87,"payload":{"manual_id":"manual-1","section":"tone.dos","text":"be direct"}}]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(server.URL, "manual_chunks")
	chunks, err := client.Search(context.Background(), "manual-1", []float32{0.1, 0.2}, 6)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Section != "tone.dos" || chunks[0].Similarity != 0.87 {
		t.Fatalf("unexpected chunk %+v", chunks[0])
	}

	filter, ok := searchBody["filter"].(map[string]any)
	if !ok {
		t.Fatalf("search body missing manual filter: %+v", searchBody)
	}
	raw, _ := json.Marshal(filter)
	if !strings.Contains(string(raw), `"manual-1"`) {
		t.Fatalf("filter does not scope to manual-1: %s", raw)
	}
}

func TestEnsureCollectionIncludesResponseBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/collections/manual_chunks" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(server.URL, "manual_chunks")
	err := client.IndexChunks(context.Background(), "manual-1", []domain.Chunk{{Section: "s", Text: "a"}}, [][]float32{{0.1, 0.2}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); !strings.Contains(got, "boom") {
		t.Fatalf("expected error to include body, got %v", err)
	}
}
