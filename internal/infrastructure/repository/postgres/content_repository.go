package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

type ContentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentColumns = `id, brand_id, brand_manual_id, type, input_brief, output_text, rag_chunks, status, created_by, created_at`

func (r *ContentRepository) InsertContent(ctx context.Context, item *domain.ContentItem) error {
	chunksJSON, err := json.Marshal(item.Chunks)
	if err != nil {
		return fmt.Errorf("marshal rag chunks: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO content_items (`+contentColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		item.ID, item.BrandID, item.ManualID, string(item.Type), item.Brief, item.Output,
		chunksJSON, string(item.Status), item.CreatedBy, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert content item: %w", err)
	}
	return nil
}

func (r *ContentRepository) GetContent(ctx context.Context, id string) (*domain.ContentItem, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+contentColumns+`
FROM content_items
WHERE id = $1
`, id)

	item, err := scanContent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get content item", fmt.Errorf("id=%s", id))
		}
		return nil, err
	}
	return item, nil
}

// UpdateStatus reports ErrNotFound when no row matched so governance can
// refuse to append history for a missing item.
func (r *ContentRepository) UpdateStatus(ctx context.Context, id string, status domain.ContentStatus) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE content_items
SET status = $2
WHERE id = $1
`, id, string(status))
	if err != nil {
		return fmt.Errorf("update content status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, "update content status", fmt.Errorf("id=%s", id))
	}
	return nil
}

func (r *ContentRepository) ListByCreator(ctx context.Context, creatorID string, limit int) ([]domain.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+contentColumns+`
FROM content_items
WHERE created_by = $1
ORDER BY created_at DESC
LIMIT $2
`, creatorID, limit)
	if err != nil {
		return nil, fmt.Errorf("query content by creator: %w", err)
	}
	return collectContent(rows)
}

func (r *ContentRepository) ListPending(ctx context.Context, limit int) ([]domain.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+contentColumns+`
FROM content_items
WHERE status = $1
ORDER BY created_at DESC
LIMIT $2
`, string(domain.ContentStatusPending), limit)
	if err != nil {
		return nil, fmt.Errorf("query pending content: %w", err)
	}
	return collectContent(rows)
}

func collectContent(rows *sql.Rows) ([]domain.ContentItem, error) {
	defer rows.Close()

	var items []domain.ContentItem
	for rows.Next() {
		item, err := scanContent(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanContent(scan func(...any) error) (*domain.ContentItem, error) {
	var (
		item      domain.ContentItem
		itemType  string
		status    string
		chunksRaw []byte
	)
	err := scan(
		&item.ID, &item.BrandID, &item.ManualID, &itemType, &item.Brief, &item.Output,
		&chunksRaw, &status, &item.CreatedBy, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(chunksRaw, &item.Chunks); err != nil {
		return nil, fmt.Errorf("unmarshal rag chunks: %w", err)
	}
	item.Type = domain.ContentType(itemType)
	item.Status = domain.ContentStatus(status)
	return &item, nil
}
