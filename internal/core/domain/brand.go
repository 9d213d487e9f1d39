package domain

import "time"

type Brand struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// VisualRules are the user-provided visual constraints for a brand. They
// are the source of truth fed into manual generation; the model must not
// invent visual rules beyond them.
type VisualRules struct {
	BrandID    string   `json:"brand_id"`
	Colors     []string `json:"colors"`
	LogoRules  []string `json:"logo_rules"`
	Typography []string `json:"typography"`
	ImageStyle []string  `json:"image_style"`
	Notes      string    `json:"notes"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EnsureDefaults replaces nil list fields with empty slices so callers can
// rely on the lists being present.
func (r *VisualRules) EnsureDefaults() {
	if r.Colors == nil {
		r.Colors = []string{}
	}
	if r.LogoRules == nil {
		r.LogoRules = []string{}
	}
	if r.Typography == nil {
		r.Typography = []string{}
	}
	if r.ImageStyle == nil {
		r.ImageStyle = []string{}
	}
}
