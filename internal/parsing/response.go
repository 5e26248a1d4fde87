package parsing

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/jonathan/rewrite-engine/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed response_schema.json
var responseSchemaJSON []byte

var (
	responseSchema     *gojsonschema.Schema
	responseSchemaErr  error
	responseSchemaOnce sync.Once
)

// Response is the structured form of one generation attempt.
type Response struct {
	Improved    string
	EvidenceMap []types.EvidenceMapItem
	Reasoning   string
	Changes     map[string]bool
	// UsedFallback is true when the JSON path failed and only the improved
	// text could be recovered. The fallback never fabricates an evidence
	// map, so EvidenceMap is empty and the validator fails closed.
	UsedFallback bool
}

// rawResponse mirrors the backend's expected JSON shape.
type rawResponse struct {
	Improved    string                  `json:"improved"`
	EvidenceMap []types.EvidenceMapItem `json:"evidence_map"`
	Reasoning   string                  `json:"reasoning"`
	Changes     map[string]bool         `json:"changes"`
}

var (
	// improvedFieldPattern recovers the improved text from a mangled JSON
	// response ("improved": "...").
	improvedFieldPattern = regexp.MustCompile(`"improved"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	// improvedLinePattern recovers prose responses like "Improved: ..." or
	// "Result: ...".
	improvedLinePattern = regexp.MustCompile(`(?im)^(?:improved|result)\s*:\s*(.+)$`)
)

// Parse turns raw backend output into a structured response. The primary path
// extracts the first JSON-object-shaped substring (tolerating surrounding
// prose and markdown fences) and validates it against the embedded response
// schema. If that fails, the regex fallback recovers only the improved text.
func Parse(raw string) (*Response, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Message: "backend response is empty"}
	}

	if jsonStr, ok := extractJSONObject(cleanMarkdownFences(raw)); ok {
		resp, err := parseJSON(jsonStr)
		if err == nil {
			return resp, nil
		}
		// Fall through to the regex fallback on malformed JSON.
	}

	if improved, ok := ExtractImprovedTextFallback(raw); ok {
		return &Response{Improved: improved, UsedFallback: true}, nil
	}

	return nil, &ParseError{Message: "no usable rewrite found in backend response"}
}

// ExtractImprovedTextFallback regex-scans for an improved-text field or an
// "Improved:"/"Result:" prefix. It never fabricates an evidence map.
func ExtractImprovedTextFallback(raw string) (string, bool) {
	if m := improvedFieldPattern.FindStringSubmatch(raw); m != nil {
		var unescaped string
		if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &unescaped); err == nil {
			unescaped = strings.TrimSpace(unescaped)
			if unescaped != "" {
				return unescaped, true
			}
		}
	}

	if m := improvedLinePattern.FindStringSubmatch(raw); m != nil {
		line := strings.TrimSpace(strings.Trim(strings.TrimSpace(m[1]), `"`))
		if line != "" {
			return line, true
		}
	}

	return "", false
}

func parseJSON(jsonStr string) (*Response, error) {
	if err := validateAgainstSchema(jsonStr); err != nil {
		return nil, err
	}

	var raw rawResponse
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, &ParseError{Message: "failed to unmarshal response JSON", Cause: err}
	}

	raw.Improved = strings.TrimSpace(raw.Improved)
	if raw.Improved == "" {
		return nil, &ParseError{Message: "response has empty improved text"}
	}

	// Optional fields default to safe values rather than failing.
	if raw.EvidenceMap == nil {
		raw.EvidenceMap = []types.EvidenceMapItem{}
	}
	if raw.Changes == nil {
		raw.Changes = map[string]bool{}
	}

	return &Response{
		Improved:    raw.Improved,
		EvidenceMap: raw.EvidenceMap,
		Reasoning:   strings.TrimSpace(raw.Reasoning),
		Changes:     raw.Changes,
	}, nil
}

func validateAgainstSchema(jsonStr string) error {
	responseSchemaOnce.Do(func() {
		responseSchema, responseSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(responseSchemaJSON))
	})
	if responseSchemaErr != nil {
		return &ParseError{Message: "failed to compile response schema", Cause: responseSchemaErr}
	}

	result, err := responseSchema.Validate(gojsonschema.NewStringLoader(jsonStr))
	if err != nil {
		return &ParseError{Message: "failed to validate response against schema", Cause: err}
	}
	if !result.Valid() {
		var reasons []string
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return &ParseError{Message: fmt.Sprintf("response does not match schema: %s", strings.Join(reasons, "; "))}
	}
	return nil
}

// extractJSONObject returns the first balanced JSON object in text,
// respecting string literals and escapes.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
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
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// cleanMarkdownFences strips ```json ... ``` wrappers that backends emit even
// when instructed not to.
func cleanMarkdownFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
