package usecase

import (
	"fmt"
	"strings"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

const generationSystemPrompt = "You are a brand copywriter. You must strictly obey the Brand Manual " +
	"provided below. Never use forbidden terms or forbidden claims. Never invent facts not present in the brief or manual."

// BuildGenerationPrompt assembles the system and user instructions for one
// generation task. The reranked chunks are embedded verbatim as the
// required context; the user instruction varies with the content type.
// No I/O, independently testable by substring assertions.
func BuildGenerationPrompt(contentType domain.ContentType, brief string, chunks []domain.RetrievedChunk) (system, user string) {
	blocks := make([]string, 0, len(chunks))
	for _, c := range chunks {
		blocks = append(blocks, fmt.Sprintf("[%s] %s", c.Section, c.Text))
	}
	context := strings.Join(blocks, "\n\n")

	switch contentType {
	case domain.ContentTypeProductDescription:
		user = fmt.Sprintf(`Brand Manual (RAG):
%s

Task: write a product description based on the brief.
Brief: %s

Requirements:
- 80-150 words (or follow length_guidelines when given).
- Tone per the manual.
- Avoid jargon if the manual forbids it.
- Do not use forbidden terms or forbidden claims.
Return only the final text.`, context, brief)

	case domain.ContentTypeVideoScript:
		user = fmt.Sprintf(`Brand Manual (RAG):
%s

Task: write a short 15s video script based on the brief.
Brief: %s

Format:
- Hook (0-3s)
- Body (3-12s)
- Close + CTA (12-15s)
Avoid forbidden terms and forbidden claims. Return only the script.`, context, brief)

	default:
		user = fmt.Sprintf(`Brand Manual (RAG):
%s

Task: generate an image prompt based on the brief.
Brief: %s

Output format:
- Main prompt (1 paragraph)
- Negative prompt (short list)
- Compliance notes (1-3 bullets)
Avoid forbidden elements and forbidden claims. Return only that.`, context, brief)
	}

	return generationSystemPrompt, user
}
