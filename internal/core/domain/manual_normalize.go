package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawManual mirrors the manual schema with loosely typed fields, because
// model output routinely returns strings where lists belong and null where
// empty containers belong.
type rawManual struct {
	BrandName string `json:"brand_name"`
	Product   string `json:"product"`
	Audience  string `json:"audience"`
	Tone      struct {
		Description string          `json:"description"`
		Dos         json.RawMessage `json:"dos"`
		Donts       json.RawMessage `json:"donts"`
	} `json:"tone"`
	Messaging map[string]json.RawMessage `json:"messaging"`
	StyleRules struct {
		ReadingLevel     string          `json:"reading_level"`
		LengthGuidelines json.RawMessage `json:"length_guidelines"`
	} `json:"style_rules"`
	VisualGuidelines struct {
		Colors     json.RawMessage `json:"colors"`
		LogoRules  json.RawMessage `json:"logo_rules"`
		Typography json.RawMessage `json:"typography"`
		ImageStyle json.RawMessage `json:"image_style"`
		Notes      json.RawMessage `json:"notes"`
	} `json:"visual_guidelines"`
	Examples struct {
		Good []Example `json:"good"`
		Bad  []Example `json:"bad"`
	} `json:"examples"`
	ApprovalChecklist json.RawMessage `json:"approval_checklist"`
	Assumptions       json.RawMessage `json:"assumptions"`
}

// NormalizeManual decodes a model-produced manual JSON object into a
// BrandManual with consistent types: nil becomes an empty container, a
// string in a list position splits on newlines with bullet markers
// stripped, and the reading level collapses to simple|medium.
func NormalizeManual(data []byte) (BrandManual, error) {
	var raw rawManual
	if err := json.Unmarshal(data, &raw); err != nil {
		return BrandManual{}, WrapError(ErrParse, "decode manual json", err)
	}

	m := BrandManual{
		BrandName: strings.TrimSpace(raw.BrandName),
		Product:   strings.TrimSpace(raw.Product),
		Audience:  strings.TrimSpace(raw.Audience),
	}

	m.Tone.Description = strings.TrimSpace(raw.Tone.Description)
	m.Tone.Dos = coerceList(raw.Tone.Dos)
	m.Tone.Donts = coerceList(raw.Tone.Donts)

	m.Messaging.ValueProps = coerceList(raw.Messaging["value_props"])
	m.Messaging.Taglines = coerceList(raw.Messaging["taglines"])
	m.Messaging.ForbiddenClaims = coerceList(raw.Messaging["forbidden_claims"])
	m.Messaging.PreferredTerms = coerceList(raw.Messaging["preferred_terms"])
	m.Messaging.ForbiddenTerms = coerceList(raw.Messaging["forbidden_terms"])

	m.StyleRules.ReadingLevel = normalizeReadingLevel(raw.StyleRules.ReadingLevel)
	m.StyleRules.LengthGuidelines = coerceStringMap(raw.StyleRules.LengthGuidelines)

	m.VisualGuidelines.Colors = coerceList(raw.VisualGuidelines.Colors)
	m.VisualGuidelines.LogoRules = coerceList(raw.VisualGuidelines.LogoRules)
	m.VisualGuidelines.Typography = coerceList(raw.VisualGuidelines.Typography)
	m.VisualGuidelines.ImageStyle = coerceList(raw.VisualGuidelines.ImageStyle)
	m.VisualGuidelines.Notes = coerceText(raw.VisualGuidelines.Notes)

	m.Examples.Good = raw.Examples.Good
	if m.Examples.Good == nil {
		m.Examples.Good = []Example{}
	}
	m.Examples.Bad = raw.Examples.Bad
	if m.Examples.Bad == nil {
		m.Examples.Bad = []Example{}
	}

	m.ApprovalChecklist = coerceList(raw.ApprovalChecklist)
	m.Assumptions = coerceList(raw.Assumptions)

	return m, nil
}

// Validate checks the invariants a normalized manual must hold before it
// is persisted and chunked.
func (m BrandManual) Validate() error {
	if m.BrandName == "" {
		return WrapError(ErrValidation, "validate manual", fmt.Errorf("brand_name is empty"))
	}
	if m.StyleRules.ReadingLevel != ReadingLevelSimple && m.StyleRules.ReadingLevel != ReadingLevelMedium {
		return WrapError(ErrValidation, "validate manual",
			fmt.Errorf("reading_level %q not in {simple, medium}", m.StyleRules.ReadingLevel))
	}
	if len(m.ApprovalChecklist) == 0 {
		return WrapError(ErrValidation, "validate manual", fmt.Errorf("approval_checklist is empty"))
	}
	return nil
}

func normalizeReadingLevel(v string) ReadingLevel {
	if strings.Contains(strings.ToLower(v), "med") {
		return ReadingLevelMedium
	}
	return ReadingLevelSimple
}

// coerceList accepts a JSON array of strings, a newline-separated string,
// a scalar, or null.
func coerceList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return splitLines(s)
	}

	// Any other scalar: keep its textual form as a single entry.
	return []string{strings.TrimSpace(string(raw))}
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, " -•\t")
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return []string{trimmed}
		}
	}
	return out
}

// coerceStringMap accepts a JSON object, a string (stored under "notes"),
// or null.
func coerceStringMap(raw json.RawMessage) map[string]string {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]string{}
	}

	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err == nil {
		out := make(map[string]string, len(loose))
		for k, v := range loose {
			out[k] = fmt.Sprintf("%v", v)
		}
		return out
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
		return map[string]string{"notes": strings.TrimSpace(s)}
	}
	return map[string]string{}
}

// coerceText accepts a JSON string or null.
func coerceText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}
