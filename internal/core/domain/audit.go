package domain

import "time"

type Verdict string

const (
	VerdictCheck Verdict = "CHECK"
	VerdictFail  Verdict = "FAIL"
)

// Violation is one visual rule the model found broken, with the evidence
// it cited and a suggested fix.
type Violation struct {
	Rule     string `json:"rule"`
	Evidence string `json:"evidence"`
	Fix      string `json:"fix"`
}

// AuditJudgment is the vision model's structured output. Its Verdict field
// is advisory only: the deterministic policy in the core decides the final
// verdict, because the model's self-reported verdict is unreliable.
type AuditJudgment struct {
	Verdict             string      `json:"verdict"`
	ValidatedRulesCount int         `json:"validated_rules_count"`
	ValidatedRules      []string    `json:"validated_rules"`
	Violations          []Violation `json:"violations"`
	Notes               []string    `json:"notes"`
	Raw                 string      `json:"-"`
}

// AuditReport is the persisted outcome of one audit invocation. Immutable
// once stored. Exactly one of ContentID/BrandID identifies the subject.
type AuditReport struct {
	ID                  string      `json:"id"`
	BrandID             string      `json:"brand_id,omitempty"`
	ContentID           string      `json:"content_item_id,omitempty"`
	ManualID            string      `json:"brand_manual_id"`
	ImagePath           string      `json:"image_path"`
	ImageURL            string      `json:"image_url,omitempty"`
	Verdict             Verdict     `json:"verdict"`
	ValidatedRulesCount int         `json:"validated_rules_count"`
	ValidatedRules      []string    `json:"validated_rules"`
	Violations          []Violation `json:"violations"`
	Notes               []string    `json:"notes"`
	Raw                 string      `json:"raw,omitempty"`
	CreatedBy           string      `json:"created_by"`
	CreatedAt           time.Time   `json:"created_at"`
}
