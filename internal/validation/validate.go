package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/rewrite-engine/internal/evidence"
	"github.com/jonathan/rewrite-engine/internal/lexicon"
	"github.com/jonathan/rewrite-engine/internal/types"
)

// fabricationCodes are the codes that mean ungrounded content was generated,
// as opposed to integrity or diagnostic findings.
var fabricationCodes = map[types.ValidationCode]bool{
	types.CodeNewNumberAdded:        true,
	types.CodeNewToolAdded:          true,
	types.CodeNewCompanyAdded:       true,
	types.CodeUnsupportedScaleClaim: true,
}

// Validator checks rewritten text against the evidence ledger.
type Validator struct {
	lex *lexicon.Lexicon
}

// New creates a validator backed by the given lexicon.
func New(lex *lexicon.Lexicon) *Validator {
	return &Validator{lex: lex}
}

// ValidateEvidenceMap checks referential integrity: every evidence ID
// referenced by the map must resolve to an existing ledger item.
func (v *Validator) ValidateEvidenceMap(improved string, evidenceMap []types.EvidenceMapItem, ledger *types.EvidenceLedger) []types.ValidationItem {
	var items []types.ValidationItem
	for _, mapItem := range evidenceMap {
		for _, id := range mapItem.EvidenceIDs {
			if _, ok := ledger.ItemByID(id); !ok {
				items = append(items, types.ValidationItem{
					Code:     types.CodeInvalidEvidenceID,
					Severity: types.SeverityCritical,
					Message:  fmt.Sprintf("evidence id %q referenced by span %q does not exist in the ledger", id, mapItem.ImprovedSpan),
				})
			}
		}
	}
	return items
}

// ValidateRewrite runs the full fabrication check suite on one attempt:
// referential integrity, then numeric, tool, company and scale fabrication,
// then non-blocking lexical-overlap diagnostics. Passed is true iff no
// critical item was found.
func (v *Validator) ValidateRewrite(original, improved string, ledger *types.EvidenceLedger, evidenceMap []types.EvidenceMapItem) types.ValidationResult {
	items := v.ValidateEvidenceMap(improved, evidenceMap, ledger)

	// A missing evidence map means every span is unsupported. Fail closed:
	// the parser's fallback path never fabricates a map, so an empty map on
	// changed text is an unreleasable attempt.
	if len(evidenceMap) == 0 && strings.TrimSpace(improved) != strings.TrimSpace(original) {
		items = append(items, types.ValidationItem{
			Code:     types.CodeInvalidEvidenceID,
			Severity: types.SeverityCritical,
			Message:  "evidence map is empty; every span of the improved text is unsupported",
		})
	}

	ledgerTerms := evidence.AllNormalizedTerms(ledger)

	items = append(items, v.checkNumbers(original, improved, ledgerTerms)...)
	items = append(items, v.checkTools(original, improved, ledgerTerms)...)
	items = append(items, v.checkCompanies(original, improved, ledgerTerms)...)
	items = append(items, v.checkScaleClaims(original, improved, ledgerTerms)...)
	items = append(items, v.checkWeakVerb(improved)...)
	items = append(items, v.checkOverlap(original, improved)...)

	return types.NewValidationResult(items)
}

// checkNumbers flags numeric tokens in improved that appear neither in the
// original text nor anywhere in the ledger's terms. This is the flagship
// anti-hallucination rule: a number the candidate never supplied can never
// silently appear.
func (v *Validator) checkNumbers(original, improved string, ledgerTerms map[string]bool) []types.ValidationItem {
	allowed := make(map[string]bool)
	for _, token := range NumericTokens(v.lex, original) {
		allowed[token] = true
	}
	for term := range ledgerTerms {
		for _, token := range NumericTokens(v.lex, term) {
			allowed[token] = true
		}
	}

	var items []types.ValidationItem
	for _, token := range NumericTokens(v.lex, improved) {
		if allowed[token] {
			continue
		}
		items = append(items, types.ValidationItem{
			Code:     types.CodeNewNumberAdded,
			Severity: types.SeverityCritical,
			Message:  fmt.Sprintf("number %q is not present in the original text or any evidence", token),
		})
	}
	return items
}

// checkTools flags technology terms in improved with no grounding. Terms
// already present in the original are kept, not added; presence is judged on
// whole tokens, so "java" is never grounded by "javascript".
func (v *Validator) checkTools(original, improved string, ledgerTerms map[string]bool) []types.ValidationItem {
	originalTokens := evidence.Tokenize(original)

	var items []types.ValidationItem
	for _, term := range TechTerms(v.lex, improved) {
		lower := strings.ToLower(term)
		if containsTokenRun(originalTokens, evidence.Tokenize(lower)) {
			continue
		}
		if termInLedger(lower, ledgerTerms) {
			continue
		}
		items = append(items, types.ValidationItem{
			Code:     types.CodeNewToolAdded,
			Severity: types.SeverityCritical,
			Message:  fmt.Sprintf("tool %q is not present in the original text or any evidence", term),
		})
	}
	return items
}

// checkCompanies flags company-shaped names in improved with no grounding.
func (v *Validator) checkCompanies(original, improved string, ledgerTerms map[string]bool) []types.ValidationItem {
	originalTokens := evidence.Tokenize(original)

	var items []types.ValidationItem
	for _, name := range CompanyNames(v.lex, improved) {
		lower := strings.ToLower(name)
		if containsTokenRun(originalTokens, evidence.Tokenize(lower)) {
			continue
		}
		if termInLedger(lower, ledgerTerms) {
			continue
		}
		items = append(items, types.ValidationItem{
			Code:     types.CodeNewCompanyAdded,
			Severity: types.SeverityCritical,
			Message:  fmt.Sprintf("company name %q is not present in the original text or any evidence", name),
		})
	}
	return items
}

// checkScaleClaims flags scale language ("massive", "enterprise-wide") with
// no grounding.
func (v *Validator) checkScaleClaims(original, improved string, ledgerTerms map[string]bool) []types.ValidationItem {
	originalTokens := evidence.Tokenize(original)

	var items []types.ValidationItem
	for _, phrase := range ScaleClaims(v.lex, improved) {
		if containsTokenRun(originalTokens, evidence.Tokenize(phrase)) {
			continue
		}
		if termInLedger(phrase, ledgerTerms) {
			continue
		}
		items = append(items, types.ValidationItem{
			Code:     types.CodeUnsupportedScaleClaim,
			Severity: types.SeverityCritical,
			Message:  fmt.Sprintf("scale claim %q is not supported by the original text or any evidence", phrase),
		})
	}
	return items
}

// checkWeakVerb warns when improved text still leads with a weak verb.
func (v *Validator) checkWeakVerb(improved string) []types.ValidationItem {
	lower := strings.ToLower(strings.TrimSpace(improved))
	for _, phrase := range v.lex.WeakVerbPhrases {
		if lower == phrase || strings.HasPrefix(lower, phrase+" ") {
			return []types.ValidationItem{{
				Code:     types.CodeWeakVerb,
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("improved text still leads with weak verb %q", phrase),
			}}
		}
	}
	return nil
}

// checkOverlap warns when the improved text no longer resembles the original
// claim. Non-blocking: legitimate strengthening can lower overlap.
func (v *Validator) checkOverlap(original, improved string) []types.ValidationItem {
	originalTokens := evidence.Tokenize(original)
	improvedTokens := evidence.Tokenize(improved)

	jaccard := JaccardSimilarity(originalTokens, improvedTokens)
	if jaccard >= v.lex.Thresholds.LowOverlapFloor {
		return nil
	}

	overlap := OverlapCoefficient(originalTokens, improvedTokens)
	return []types.ValidationItem{{
		Code:     types.CodeLowOverlap,
		Severity: types.SeverityWarning,
		Message:  fmt.Sprintf("lexical overlap with original is low (jaccard=%.2f, overlap=%.2f)", jaccard, overlap),
	}}
}

// termInLedger reports whether the ledger grounds the term. Matching is
// token-aligned in both directions: "google cloud platform" grounds
// "google cloud" because the word run matches, but "django" never grounds
// "go" and "javascript" never grounds "java".
func termInLedger(lower string, ledgerTerms map[string]bool) bool {
	if ledgerTerms[lower] {
		return true
	}
	needle := evidence.Tokenize(lower)
	if len(needle) == 0 {
		return false
	}
	for term := range ledgerTerms {
		termTokens := evidence.Tokenize(term)
		if containsTokenRun(termTokens, needle) {
			return true
		}
		// A multi-word ledger term inside the candidate also grounds it;
		// terms of one or two characters are too short to count.
		if len(term) > 2 && containsTokenRun(needle, termTokens) {
			return true
		}
	}
	return false
}

// containsTokenRun reports whether needle appears in haystack as a contiguous
// run of whole tokens.
func containsTokenRun(haystack, needle []string) bool {
	if len(needle) == 0 {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		matched := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// HasFabricationErrors reports whether any item carries a fabrication code,
// regardless of overall Passed. Distinct from Passed: some critical items
// (invalid evidence IDs) are integrity failures, not fabrication.
func HasFabricationErrors(result types.ValidationResult) bool {
	for _, item := range result.Items {
		if fabricationCodes[item.Code] {
			return true
		}
	}
	return false
}

// CriticalErrors returns only the blocking items.
func CriticalErrors(result types.ValidationResult) []types.ValidationItem {
	var critical []types.ValidationItem
	for _, item := range result.Items {
		if item.Severity == types.SeverityCritical {
			critical = append(critical, item)
		}
	}
	return critical
}

// Warnings returns only the non-blocking items.
func Warnings(result types.ValidationResult) []types.ValidationItem {
	var warnings []types.ValidationItem
	for _, item := range result.Items {
		if item.Severity == types.SeverityWarning {
			warnings = append(warnings, item)
		}
	}
	return warnings
}
