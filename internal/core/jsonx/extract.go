// Package jsonx extracts JSON objects from freeform model output.
package jsonx

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

// ExtractObject parses the first JSON object found in text. Markdown code
// fences are stripped first, then a direct parse is attempted, then the
// first balanced {...} substring. Failure returns ErrParse; the raw text
// is never coerced into a default.
func ExtractObject(text string) (json.RawMessage, error) {
	cleaned := stripFences(text)
	if cleaned == "" {
		return nil, domain.WrapError(domain.ErrParse, "extract json", fmt.Errorf("empty model output"))
	}

	if json.Valid([]byte(cleaned)) && strings.HasPrefix(cleaned, "{") {
		return json.RawMessage(cleaned), nil
	}

	candidate, ok := firstBalancedObject(cleaned)
	if !ok {
		return nil, domain.WrapError(domain.ErrParse, "extract json", fmt.Errorf("no JSON object in model output"))
	}
	if !json.Valid([]byte(candidate)) {
		return nil, domain.WrapError(domain.ErrParse, "extract json", fmt.Errorf("malformed JSON object in model output"))
	}
	return json.RawMessage(candidate), nil
}

func stripFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// firstBalancedObject scans for the first '{' and returns the substring up
// to its matching '}'. String literals are honored so braces inside quoted
// values do not unbalance the scan.
func firstBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
