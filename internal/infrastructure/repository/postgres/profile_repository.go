package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) ProfileByToken(ctx context.Context, token string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, role
FROM profiles
WHERE api_token = $1
`, token)

	var (
		profile domain.Profile
		role    string
	)
	err := row.Scan(&profile.ID, &profile.Email, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrForbidden, "resolve profile", errors.New("unknown token"))
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	profile.Role = domain.Role(role)
	return &profile, nil
}
