package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

type ApprovalRepository struct {
	db *sql.DB
}

func NewApprovalRepository(db *sql.DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

func (r *ApprovalRepository) InsertApproval(ctx context.Context, record *domain.ApprovalRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO approvals (id, content_item_id, role, decision, comment, created_by, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, record.ID, record.ContentID, string(record.Role), string(record.Decision), record.Comment, record.CreatedBy, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert approval: %w", err)
	}
	return nil
}

func (r *ApprovalRepository) ListByContent(ctx context.Context, contentID string) ([]domain.ApprovalRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, content_item_id, role, decision, comment, created_by, created_at
FROM approvals
WHERE content_item_id = $1
ORDER BY created_at
`, contentID)
	if err != nil {
		return nil, fmt.Errorf("query approvals: %w", err)
	}
	defer rows.Close()

	var records []domain.ApprovalRecord
	for rows.Next() {
		var (
			record   domain.ApprovalRecord
			role     string
			decision string
		)
		if err := rows.Scan(&record.ID, &record.ContentID, &role, &decision, &record.Comment, &record.CreatedBy, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		record.Role = domain.Role(role)
		record.Decision = domain.Decision(decision)
		records = append(records, record)
	}
	return records, rows.Err()
}
