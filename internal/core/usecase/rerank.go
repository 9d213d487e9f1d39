package usecase

import (
	"sort"
	"strings"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

// sectionWeights map manual sections to retrieval priority, matched by
// longest listed prefix. Compliance-critical sections carry the highest
// weights so they are never crowded out by merely-more-similar chunks.
var sectionWeights = []struct {
	prefix string
	weight int
}{
	{"messaging.forbidden_claims", 100},
	{"messaging.forbidden_terms", 100},
	{"tone.donts", 90},
	{"tone.dos", 85},
	{"style_rules", 80},
	{"approval_checklist", 75},
	{"messaging.preferred_terms", 70},
	{"messaging.value_props", 65},
	{"messaging.taglines", 60},
	{"visual.logo_rules", 40},
	{"visual.typography", 35},
	{"visual.colors", 35},
	{"visual.image_style", 30},
	{"visual.notes", 20},
	{"examples.bad", 15},
	{"examples.good", 10},
}

func weightForSection(section string) int {
	section = strings.TrimSpace(section)
	for _, entry := range sectionWeights {
		if section == entry.prefix || strings.HasPrefix(section, entry.prefix) {
			return entry.weight
		}
	}
	return 0
}

// typeBonus nudges sections relevant to the requested content type.
func typeBonus(section string, contentType domain.ContentType) int {
	switch contentType {
	case domain.ContentTypeImagePrompt:
		if strings.HasPrefix(section, "visual.") {
			return 25
		}
	case domain.ContentTypeVideoScript:
		if strings.HasPrefix(section, "tone.") {
			return 10
		}
	case domain.ContentTypeProductDescription:
		bonus := 0
		if strings.HasPrefix(section, "messaging.value_props") {
			bonus += 10
		}
		if strings.HasPrefix(section, "messaging.preferred_terms") {
			bonus += 10
		}
		return bonus
	}
	return 0
}

// RerankChunks reorders retrieval candidates by a combined rule+similarity
// score and keeps exactly min(keepK, len) of them; keepK zero keeps none.
// The section weight is multiplied so far
// above the similarity term that priority tiers strictly dominate;
// similarity only breaks ties inside a tier. The sort is stable: equal
// scores preserve input order. Pure and exactly reproducible.
func RerankChunks(candidates []domain.RetrievedChunk, contentType domain.ContentType, keepK int) []domain.RetrievedChunk {
	if keepK < 0 {
		keepK = 0
	}
	if keepK > len(candidates) {
		keepK = len(candidates)
	}

	ranked := make([]domain.RetrievedChunk, len(candidates))
	copy(ranked, candidates)

	score := func(c domain.RetrievedChunk) float64 {
		w := weightForSection(c.Section) + typeBonus(c.Section, contentType)
		return float64(w)*1000.0 + c.Similarity*100.0
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})

	return ranked[:keepK]
}
