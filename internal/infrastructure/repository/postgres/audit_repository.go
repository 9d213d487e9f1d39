package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) InsertReport(ctx context.Context, report *domain.AuditReport) error {
	rulesJSON, err := json.Marshal(report.ValidatedRules)
	if err != nil {
		return fmt.Errorf("marshal validated rules: %w", err)
	}
	violationsJSON, err := json.Marshal(report.Violations)
	if err != nil {
		return fmt.Errorf("marshal violations: %w", err)
	}
	notesJSON, err := json.Marshal(report.Notes)
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO audit_reports (
	id, brand_id, content_item_id, brand_manual_id, image_path, verdict,
	validated_rules_count, validated_rules, violations, notes, raw, created_by, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`,
		report.ID, nullable(report.BrandID), nullable(report.ContentID), report.ManualID, report.ImagePath,
		string(report.Verdict), report.ValidatedRulesCount, rulesJSON, violationsJSON, notesJSON,
		report.Raw, report.CreatedBy, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit report: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByBrand(ctx context.Context, brandID string, limit int) ([]domain.AuditReport, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, brand_id, content_item_id, brand_manual_id, image_path, verdict,
	validated_rules_count, validated_rules, violations, notes, raw, created_by, created_at
FROM audit_reports
WHERE brand_id = $1
ORDER BY created_at DESC
LIMIT $2
`, brandID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.AuditReport
	for rows.Next() {
		var (
			report        domain.AuditReport
			brandCol      sql.NullString
			contentCol    sql.NullString
			verdict       string
			rulesRaw      []byte
			violationsRaw []byte
			notesRaw      []byte
		)
		err := rows.Scan(
			&report.ID, &brandCol, &contentCol, &report.ManualID, &report.ImagePath, &verdict,
			&report.ValidatedRulesCount, &rulesRaw, &violationsRaw, &notesRaw,
			&report.Raw, &report.CreatedBy, &report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit report: %w", err)
		}
		report.BrandID = brandCol.String
		report.ContentID = contentCol.String
		report.Verdict = domain.Verdict(verdict)
		if err := json.Unmarshal(rulesRaw, &report.ValidatedRules); err != nil {
			return nil, fmt.Errorf("unmarshal validated rules: %w", err)
		}
		if err := json.Unmarshal(violationsRaw, &report.Violations); err != nil {
			return nil, fmt.Errorf("unmarshal violations: %w", err)
		}
		if err := json.Unmarshal(notesRaw, &report.Notes); err != nil {
			return nil, fmt.Errorf("unmarshal notes: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
