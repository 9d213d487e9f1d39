package domain

import "time"

type ReadingLevel string

const (
	ReadingLevelSimple ReadingLevel = "simple"
	ReadingLevelMedium ReadingLevel = "medium"
)

// Tone describes how the brand speaks.
type Tone struct {
	Description string   `json:"description"`
	Dos         []string `json:"dos"`
	Donts       []string `json:"donts"`
}

// Messaging holds the brand's messaging framework. Forbidden claims and
// terms are the highest-priority sections at retrieval time.
type Messaging struct {
	ValueProps      []string `json:"value_props"`
	Taglines        []string `json:"taglines"`
	ForbiddenClaims []string `json:"forbidden_claims"`
	PreferredTerms  []string `json:"preferred_terms"`
	ForbiddenTerms  []string `json:"forbidden_terms"`
}

type StyleRules struct {
	ReadingLevel     ReadingLevel      `json:"reading_level"`
	LengthGuidelines map[string]string `json:"length_guidelines"`
}

type VisualGuidelines struct {
	Colors     []string `json:"colors"`
	LogoRules  []string `json:"logo_rules"`
	Typography []string `json:"typography"`
	ImageStyle []string `json:"image_style"`
	Notes      string   `json:"notes"`
}

// Example is one good or bad reference piece. Category names the channel
// ("social media", "email subject"); Why explains bad examples.
type Example struct {
	Category string `json:"type"`
	Text     string `json:"text"`
	Why      string `json:"why,omitempty"`
}

type Examples struct {
	Good []Example `json:"good"`
	Bad  []Example `json:"bad"`
}

// BrandManual is the structured guideline document driving generation and
// audit. Every list-typed field is present after Normalize, never nil.
type BrandManual struct {
	BrandName         string           `json:"brand_name"`
	Product           string           `json:"product"`
	Audience          string           `json:"audience"`
	Tone              Tone             `json:"tone"`
	Messaging         Messaging        `json:"messaging"`
	StyleRules        StyleRules       `json:"style_rules"`
	VisualGuidelines  VisualGuidelines `json:"visual_guidelines"`
	Examples          Examples         `json:"examples"`
	ApprovalChecklist []string         `json:"approval_checklist"`
	Assumptions       []string         `json:"assumptions"`
}

// ManualRecord is a persisted, versioned manual. Chunks embedded for an
// older version are never deleted; retrieval scopes by manual id, so they
// simply stop being queried once callers switch to the newest version.
type ManualRecord struct {
	ID        string      `json:"id"`
	BrandID   string      `json:"brand_id"`
	Manual    BrandManual `json:"manual"`
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
}
