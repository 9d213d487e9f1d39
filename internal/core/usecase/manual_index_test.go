package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

type indexManualsFake struct {
	record *domain.ManualRecord
	err    error
}

func (f *indexManualsFake) InsertManual(context.Context, *domain.ManualRecord) error {
	return errors.New("not implemented")
}
func (f *indexManualsFake) GetManualByID(context.Context, string) (*domain.ManualRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}
func (f *indexManualsFake) GetLatestManual(context.Context, string) (*domain.ManualRecord, error) {
	return nil, errors.New("not implemented")
}

type indexChunkFake struct {
	manualID string
	chunks   []domain.Chunk
	vectors  [][]float32
	err      error
}

func (f *indexChunkFake) IndexChunks(_ context.Context, manualID string, chunks []domain.Chunk, vectors [][]float32) error {
	if f.err != nil {
		return f.err
	}
	f.manualID = manualID
	f.chunks = chunks
	f.vectors = vectors
	return nil
}
func (f *indexChunkFake) Search(context.Context, string, []float32, int) ([]domain.RetrievedChunk, error) {
	return nil, errors.New("not implemented")
}

func TestIndexByIDSuccess(t *testing.T) {
	manuals := &indexManualsFake{record: &domain.ManualRecord{ID: "manual-1", Manual: fullManual()}}
	index := &indexChunkFake{}
	uc := NewIndexManualUseCase(manuals, &genEmbedderFake{}, index)

	if err := uc.IndexByID(context.Background(), "manual-1"); err != nil {
		t.Fatalf("IndexByID() error = %v", err)
	}
	if index.manualID != "manual-1" {
		t.Fatalf("chunks indexed under %s, want manual-1", index.manualID)
	}
	if len(index.chunks) == 0 || len(index.chunks) != len(index.vectors) {
		t.Fatalf("chunks/vectors mismatch: %d/%d", len(index.chunks), len(index.vectors))
	}
}

func TestIndexByIDEmptyManual(t *testing.T) {
	manuals := &indexManualsFake{record: &domain.ManualRecord{ID: "manual-1"}}
	uc := NewIndexManualUseCase(manuals, &genEmbedderFake{}, &indexChunkFake{})

	err := uc.IndexByID(context.Background(), "manual-1")
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("zero chunks must be ErrValidation, got %v", err)
	}
}

func TestIndexByIDEmbedderError(t *testing.T) {
	manuals := &indexManualsFake{record: &domain.ManualRecord{ID: "manual-1", Manual: fullManual()}}
	embedder := &genEmbedderFake{err: domain.WrapError(domain.ErrProvider, "embed", errors.New("quota"))}
	index := &indexChunkFake{}
	uc := NewIndexManualUseCase(manuals, embedder, index)

	err := uc.IndexByID(context.Background(), "manual-1")
	if !domain.IsKind(err, domain.ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
	if index.manualID != "" {
		t.Fatalf("nothing must be indexed on embed failure")
	}
}
