package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL,
	api_token TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS brands (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS brand_visual_rules (
	brand_id TEXT PRIMARY KEY REFERENCES brands(id),
	colors JSONB NOT NULL DEFAULT '[]'::jsonb,
	logo_rules JSONB NOT NULL DEFAULT '[]'::jsonb,
	typography JSONB NOT NULL DEFAULT '[]'::jsonb,
	image_style JSONB NOT NULL DEFAULT '[]'::jsonb,
	notes TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS brand_manuals (
	id TEXT PRIMARY KEY,
	brand_id TEXT NOT NULL REFERENCES brands(id),
	manual JSONB NOT NULL,
	version INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (brand_id, version)
);

CREATE TABLE IF NOT EXISTS content_items (
	id TEXT PRIMARY KEY,
	brand_id TEXT NOT NULL,
	brand_manual_id TEXT NOT NULL,
	type TEXT NOT NULL,
	input_brief TEXT NOT NULL,
	output_text TEXT NOT NULL,
	rag_chunks JSONB NOT NULL DEFAULT '[]'::jsonb,
	status TEXT NOT NULL,
	created_by TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS approvals (
	id TEXT PRIMARY KEY,
	content_item_id TEXT NOT NULL REFERENCES content_items(id),
	role TEXT NOT NULL,
	decision TEXT NOT NULL,
	comment TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_reports (
	id TEXT PRIMARY KEY,
	brand_id TEXT,
	content_item_id TEXT,
	brand_manual_id TEXT NOT NULL,
	image_path TEXT NOT NULL,
	verdict TEXT NOT NULL,
	validated_rules_count INT NOT NULL DEFAULT 0,
	validated_rules JSONB NOT NULL DEFAULT '[]'::jsonb,
	violations JSONB NOT NULL DEFAULT '[]'::jsonb,
	notes JSONB NOT NULL DEFAULT '[]'::jsonb,
	raw TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_manuals_brand_version ON brand_manuals(brand_id, version DESC);
CREATE INDEX IF NOT EXISTS idx_content_status ON content_items(status);
CREATE INDEX IF NOT EXISTS idx_content_created_by ON content_items(created_by, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_approvals_content ON approvals(content_item_id, created_at);
CREATE INDEX IF NOT EXISTS idx_audits_brand ON audit_reports(brand_id, created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
