package evidence

import (
	"regexp"
	"strings"

	"github.com/jonathan/rewrite-engine/internal/types"
)

// Reserved IDs for entity-derived evidence items. The self-evidence item is
// always E1; callers reference entity items by category.
const (
	SelfEvidenceID       = "E1"
	SkillsEvidenceID     = "E_skills"
	ToolsEvidenceID      = "E_tools"
	TitlesEvidenceID     = "E_titles"
	IndustriesEvidenceID = "E_industries"
)

var wordPattern = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9.+#/-]*`)

// Build turns the original text plus externally supplied extracted entities
// into an evidence ledger. Building is pure and deterministic: identical
// inputs yield identical item ordering and IDs. The ledger always contains at
// least the self-evidence item, even with no entities supplied.
func Build(original string, extracted *types.ExtractedEntities) (*types.EvidenceLedger, error) {
	return build(original, types.EvidenceBullet, extracted)
}

// BuildForSection builds a ledger whose self-evidence item carries the
// section type. The joined section text is the original input.
func BuildForSection(sectionText string, extracted *types.ExtractedEntities) (*types.EvidenceLedger, error) {
	return build(sectionText, types.EvidenceSection, extracted)
}

func build(original string, selfType types.EvidenceType, extracted *types.ExtractedEntities) (*types.EvidenceLedger, error) {
	if strings.TrimSpace(original) == "" {
		return nil, &BuildError{Message: "original text is empty"}
	}

	ledger := &types.EvidenceLedger{}
	ledger.Items = append(ledger.Items, types.EvidenceItem{
		ID:              SelfEvidenceID,
		Type:            selfType,
		Text:            original,
		NormalizedTerms: Tokenize(original),
	})

	if extracted == nil {
		return ledger, nil
	}

	// Fixed category order keeps IDs deterministic.
	categories := []struct {
		id       string
		itemType types.EvidenceType
		values   []string
	}{
		{SkillsEvidenceID, types.EvidenceSkills, extracted.Skills},
		{ToolsEvidenceID, types.EvidenceTools, extracted.Tools},
		{TitlesEvidenceID, types.EvidenceTitles, extracted.Titles},
		{IndustriesEvidenceID, types.EvidenceIndustries, extracted.Industries},
	}

	for _, cat := range categories {
		terms := normalizeList(cat.values)
		if len(terms) == 0 {
			continue
		}
		ledger.Items = append(ledger.Items, types.EvidenceItem{
			ID:              cat.id,
			Type:            cat.itemType,
			Text:            strings.Join(cat.values, ", "),
			NormalizedTerms: terms,
		})
	}

	return ledger, nil
}

// AllNormalizedTerms returns the union of all items' normalized terms. This
// union is the single source of truth for "is this claim grounded?" checks.
func AllNormalizedTerms(ledger *types.EvidenceLedger) map[string]bool {
	terms := make(map[string]bool)
	for _, item := range ledger.Items {
		for _, term := range item.NormalizedTerms {
			terms[term] = true
		}
	}
	return terms
}

// FindForTerm performs a case-insensitive substring/token match against each
// item and returns the first match, or nil if no item supports the term.
func FindForTerm(ledger *types.EvidenceLedger, term string) (*types.EvidenceItem, bool) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil, false
	}
	for i := range ledger.Items {
		item := &ledger.Items[i]
		if strings.Contains(strings.ToLower(item.Text), needle) {
			return item, true
		}
		for _, t := range item.NormalizedTerms {
			if t == needle {
				return item, true
			}
		}
	}
	return nil, false
}

// Tokenize splits text into lower-cased word tokens. Tokens keep internal
// punctuation common in technology names (node.js, ci/cd, c++, c#).
func Tokenize(text string) []string {
	matches := wordPattern.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		token := strings.ToLower(strings.Trim(m, ".-/"))
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}

// normalizeList lower-cases and trims each entry, dropping empties and
// duplicates while preserving order.
func normalizeList(values []string) []string {
	seen := make(map[string]bool, len(values))
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		term := strings.ToLower(strings.TrimSpace(v))
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		normalized = append(normalized, term)
	}
	return normalized
}
