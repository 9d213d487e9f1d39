package ports

import (
	"context"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

// BrandRepository persists brands and their user-defined visual rules.
type BrandRepository interface {
	CreateBrand(ctx context.Context, brand *domain.Brand) error
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	ListBrands(ctx context.Context, limit int) ([]domain.Brand, error)
	GetVisualRules(ctx context.Context, brandID string) (*domain.VisualRules, error)
	UpsertVisualRules(ctx context.Context, rules *domain.VisualRules) error
}

// ManualRepository persists versioned manuals.
type ManualRepository interface {
	InsertManual(ctx context.Context, record *domain.ManualRecord) error
	GetManualByID(ctx context.Context, id string) (*domain.ManualRecord, error)
	GetLatestManual(ctx context.Context, brandID string) (*domain.ManualRecord, error)
}

// ContentRepository persists generated content items. UpdateStatus reports
// domain.ErrNotFound when no row matches, so callers can guard the
// transition before appending approval history.
type ContentRepository interface {
	InsertContent(ctx context.Context, item *domain.ContentItem) error
	GetContent(ctx context.Context, id string) (*domain.ContentItem, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContentStatus) error
	ListByCreator(ctx context.Context, creatorID string, limit int) ([]domain.ContentItem, error)
	ListPending(ctx context.Context, limit int) ([]domain.ContentItem, error)
}

// ApprovalRepository appends immutable governance decisions.
type ApprovalRepository interface {
	InsertApproval(ctx context.Context, record *domain.ApprovalRecord) error
	ListByContent(ctx context.Context, contentID string) ([]domain.ApprovalRecord, error)
}

// AuditRepository persists image audit reports.
type AuditRepository interface {
	InsertReport(ctx context.Context, report *domain.AuditReport) error
	ListByBrand(ctx context.Context, brandID string, limit int) ([]domain.AuditReport, error)
}

// ProfileRepository resolves caller identity and role from a bearer token.
type ProfileRepository interface {
	ProfileByToken(ctx context.Context, token string) (*domain.Profile, error)
}

// ObjectStorage stores uploaded audit images and signs download URLs.
type ObjectStorage interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	Open(ctx context.Context, path string) ([]byte, string, error)
	SignedURL(path string, ttl time.Duration) (string, error)
}

// MessageQueue publishes/consumes manual indexing events.
type MessageQueue interface {
	PublishManualCreated(ctx context.Context, manualID string) error
	SubscribeManualCreated(ctx context.Context, handler func(context.Context, string) error) error
}

// Embedder builds fixed-dimension vectors for chunks and query text, one
// vector per input in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// ChunkIndex stores embedded chunks and performs similarity search scoped
// to a single manual id.
type ChunkIndex interface {
	IndexChunks(ctx context.Context, manualID string, chunks []domain.Chunk, vectors [][]float32) error
	Search(ctx context.Context, manualID string, queryVector []float32, limit int) ([]domain.RetrievedChunk, error)
}

// TextGenerator is the chat-completion provider.
type TextGenerator interface {
	Chat(ctx context.Context, system, user string, temperature float32) (string, error)
}

// VisionJudge sends an image plus rules text to a vision model and parses
// its structured judgment. The judgment's own verdict is advisory.
type VisionJudge interface {
	Judge(ctx context.Context, image []byte, mimeType, rulesText string) (domain.AuditJudgment, error)
}

// Tracer is the best-effort observability port. Implementations must never
// let their own failures reach the primary flow.
type Tracer interface {
	Trace(name string, input map[string]any) Span
}

type Span interface {
	Update(output map[string]any)
	End()
}
