package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
	"github.com/dmoralesf/brand-guardian/internal/core/ports"
)

// IndexManualUseCase is the worker-side half of manual creation: it
// chunks, embeds and indexes a persisted manual so the RAG flows can
// retrieve it.
type IndexManualUseCase struct {
	manuals  ports.ManualRepository
	embedder ports.Embedder
	index    ports.ChunkIndex
}

func NewIndexManualUseCase(
	manuals ports.ManualRepository,
	embedder ports.Embedder,
	index ports.ChunkIndex,
) *IndexManualUseCase {
	return &IndexManualUseCase{
		manuals:  manuals,
		embedder: embedder,
		index:    index,
	}
}

func (uc *IndexManualUseCase) IndexByID(ctx context.Context, manualID string) error {
	record, err := uc.manuals.GetManualByID(ctx, manualID)
	if err != nil {
		return fmt.Errorf("fetch manual by id: %w", err)
	}

	chunks := ChunkManual(record.Manual)
	if len(chunks) == 0 {
		return domain.WrapError(domain.ErrValidation, "chunk manual", errors.New("manual produced zero chunks"))
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return domain.WrapError(domain.ErrValidation, "embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)))
	}

	if err := uc.index.IndexChunks(ctx, record.ID, chunks, vectors); err != nil {
		return fmt.Errorf("index chunks: %w", err)
	}
	return nil
}
