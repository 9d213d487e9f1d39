package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
	"github.com/dmoralesf/brand-guardian/internal/core/ports"
)

const (
	generateRetrieveK = 6
	generateKeepK     = 6
	// minContextChunks guards against generating on too little grounding.
	minContextChunks = 3

	generateTemperature = 0.5
)

type GenerateContentUseCase struct {
	manuals   ports.ManualRepository
	contents  ports.ContentRepository
	embedder  ports.Embedder
	index     ports.ChunkIndex
	generator ports.TextGenerator
	tracer    ports.Tracer
}

func NewGenerateContentUseCase(
	manuals ports.ManualRepository,
	contents ports.ContentRepository,
	embedder ports.Embedder,
	index ports.ChunkIndex,
	generator ports.TextGenerator,
	tracer ports.Tracer,
) *GenerateContentUseCase {
	return &GenerateContentUseCase{
		manuals:   manuals,
		contents:  contents,
		embedder:  embedder,
		index:     index,
		generator: generator,
		tracer:    tracer,
	}
}

// Generate runs the full RAG flow: embed the brief, retrieve chunks scoped
// to the brand's latest manual, rerank, assemble the prompt, invoke the
// model and persist the item in PENDING state.
func (uc *GenerateContentUseCase) Generate(ctx context.Context, req ports.GenerateRequest, profile domain.Profile) (*domain.ContentItem, error) {
	if !req.Type.Valid() {
		return nil, domain.WrapError(domain.ErrValidation, "generate content",
			fmt.Errorf("unknown content type %q", req.Type))
	}
	if strings.TrimSpace(req.Brief) == "" {
		return nil, domain.WrapError(domain.ErrValidation, "generate content", fmt.Errorf("brief is empty"))
	}

	span := uc.tracer.Trace("creative_engine.generate", map[string]any{
		"brand_id": req.BrandID,
		"type":     string(req.Type),
	})
	defer span.End()

	manual, err := uc.manuals.GetLatestManual(ctx, req.BrandID)
	if err != nil {
		return nil, fmt.Errorf("fetch latest manual: %w", err)
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, req.Brief)
	if err != nil {
		return nil, fmt.Errorf("embed brief: %w", err)
	}

	candidates, err := uc.index.Search(ctx, manual.ID, queryVector, generateRetrieveK)
	if err != nil {
		return nil, fmt.Errorf("retrieve manual chunks: %w", err)
	}
	if len(candidates) < minContextChunks {
		span.Update(map[string]any{"error": "rag_insufficient", "chunks": len(candidates)})
		return nil, domain.WrapError(domain.ErrInsufficientContext, "generate content",
			fmt.Errorf("retrieved %d chunks, need at least %d", len(candidates), minContextChunks))
	}

	reranked := RerankChunks(candidates, req.Type, generateKeepK)
	system, user := BuildGenerationPrompt(req.Type, req.Brief, reranked)
	span.Update(map[string]any{
		"manual_id": manual.ID,
		"chunks":    len(reranked),
	})

	output, err := uc.generator.Chat(ctx, system, user, generateTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate output: %w", err)
	}

	item := &domain.ContentItem{
		ID:        uuid.NewString(),
		BrandID:   req.BrandID,
		ManualID:  manual.ID,
		Type:      req.Type,
		Brief:     req.Brief,
		Output:    output,
		Chunks:    reranked,
		Status:    domain.ContentStatusPending,
		CreatedBy: profile.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.contents.InsertContent(ctx, item); err != nil {
		return nil, fmt.Errorf("persist content item: %w", err)
	}

	span.Update(map[string]any{"content_id": item.ID, "status": string(item.Status)})
	return item, nil
}

func (uc *GenerateContentUseCase) GetContent(ctx context.Context, contentID string) (*domain.ContentItem, error) {
	item, err := uc.contents.GetContent(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("fetch content item: %w", err)
	}
	return item, nil
}
