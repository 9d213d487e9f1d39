package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
	"github.com/dmoralesf/brand-guardian/internal/infrastructure/resilience"
)

const embedBatchSize = 100

type EmbedderConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Dimensions     int
	RequestTimeout time.Duration
	Executor       *resilience.Executor
}

// Embedder produces fixed-dimension vectors via the embeddings endpoint.
// Every returned vector is checked against the configured dimension: a
// silently resized vector would corrupt the similarity index.
type Embedder struct {
	api        *openai.Client
	apiKey     string
	model      string
	dimensions int
	timeout    time.Duration
	executor   *resilience.Executor
}

func NewEmbedder(cfg EmbedderConfig) *Embedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}
	dimensions := cfg.Dimensions
	if dimensions <= 0 {
		dimensions = 1536
	}
	return &Embedder{
		api:        openai.NewClientWithConfig(clientCfg),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		dimensions: dimensions,
		timeout:    timeout,
		executor:   cfg.Executor,
	}
}

func (e *Embedder) Dimensions() int {
	return e.dimensions
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if e.apiKey == "" {
		return nil, domain.WrapError(domain.ErrMissingCredential, "embed", errors.New("api key is not configured"))
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, domain.WrapError(domain.ErrProvider, "embed query", errors.New("empty embedding result"))
	}
	return vectors[0], nil
}

func (e *Embedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var vectors [][]float32
	call := func(ctx context.Context) error {
		resp, err := e.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(e.model),
		})
		if err != nil {
			return fmt.Errorf("create embeddings: %w", err)
		}
		if len(resp.Data) != len(batch) {
			return fmt.Errorf("create embeddings: got %d vectors for %d inputs", len(resp.Data), len(batch))
		}
		vectors = make([][]float32, 0, len(resp.Data))
		for _, item := range resp.Data {
			if len(item.Embedding) != e.dimensions {
				return fmt.Errorf("create embeddings: vector dimension %d, expected %d", len(item.Embedding), e.dimensions)
			}
			vectors = append(vectors, item.Embedding)
		}
		return nil
	}

	var err error
	if e.executor != nil {
		err = e.executor.Execute(ctx, "llm.embed", call, classifyProviderError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, wrapProviderError("embed", err)
	}
	return vectors, nil
}
