package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

// ChunkManual splits a manual into labeled chunks, one per meaningful
// section. It is a pure function of the document: no randomness, no I/O,
// identical output for identical input. Emission order follows document
// structure; importance is the reranker's job. Sections whose rendered
// text trims to empty are skipped, never errors.
func ChunkManual(manual domain.BrandManual) []domain.Chunk {
	var chunks []domain.Chunk

	add := func(section, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		chunks = append(chunks, domain.Chunk{Section: section, Text: text})
	}

	add("tone.description", manual.Tone.Description)
	add("tone.dos", strings.Join(manual.Tone.Dos, "\n"))
	add("tone.donts", strings.Join(manual.Tone.Donts, "\n"))

	add("messaging.value_props", strings.Join(manual.Messaging.ValueProps, "\n"))
	add("messaging.taglines", strings.Join(manual.Messaging.Taglines, "\n"))
	add("messaging.forbidden_claims", strings.Join(manual.Messaging.ForbiddenClaims, "\n"))
	add("messaging.preferred_terms", strings.Join(manual.Messaging.PreferredTerms, "\n"))
	add("messaging.forbidden_terms", strings.Join(manual.Messaging.ForbiddenTerms, "\n"))

	add("style_rules.reading_level", string(manual.StyleRules.ReadingLevel))
	add("style_rules.length_guidelines", renderLengthGuidelines(manual.StyleRules.LengthGuidelines))

	add("visual.colors", strings.Join(manual.VisualGuidelines.Colors, "\n"))
	add("visual.logo_rules", strings.Join(manual.VisualGuidelines.LogoRules, "\n"))
	add("visual.typography", strings.Join(manual.VisualGuidelines.Typography, "\n"))
	add("visual.image_style", strings.Join(manual.VisualGuidelines.ImageStyle, "\n"))
	add("visual.notes", manual.VisualGuidelines.Notes)

	add("examples.good", renderExamples(manual.Examples.Good, false))
	add("examples.bad", renderExamples(manual.Examples.Bad, true))

	add("approval_checklist", strings.Join(manual.ApprovalChecklist, "\n"))
	add("assumptions", strings.Join(manual.Assumptions, "\n"))

	return chunks
}

// renderLengthGuidelines stringifies the key→text map in sorted key order
// so chunking stays deterministic across runs.
func renderLengthGuidelines(guidelines map[string]string) string {
	if len(guidelines) == 0 {
		return ""
	}
	keys := make([]string, 0, len(guidelines))
	for k := range guidelines {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, guidelines[k]))
	}
	return strings.Join(lines, "\n")
}

func renderExamples(examples []domain.Example, withWhy bool) string {
	if len(examples) == 0 {
		return ""
	}
	lines := make([]string, 0, len(examples))
	for _, ex := range examples {
		line := fmt.Sprintf("%s: %s", ex.Category, ex.Text)
		if withWhy {
			line = fmt.Sprintf("%s (why: %s)", line, ex.Why)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n\n")
}
