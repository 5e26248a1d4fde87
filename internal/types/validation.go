package types

// ValidationCode identifies a single validation finding
type ValidationCode string

// Validation code constants
const (
	// CodeNewNumberAdded flags a numeric token absent from the original text and the ledger
	CodeNewNumberAdded ValidationCode = "NEW_NUMBER_ADDED"
	// CodeNewToolAdded flags a tool/technology term absent from the original text and the ledger
	CodeNewToolAdded ValidationCode = "NEW_TOOL_ADDED"
	// CodeNewCompanyAdded flags a company-shaped name absent from the original text and the ledger
	CodeNewCompanyAdded ValidationCode = "NEW_COMPANY_ADDED"
	// CodeUnsupportedScaleClaim flags scale language with no grounding in the original or ledger
	CodeUnsupportedScaleClaim ValidationCode = "UNSUPPORTED_SCALE_CLAIM"
	// CodeInvalidEvidenceID flags an evidence map reference that resolves to no ledger item
	CodeInvalidEvidenceID ValidationCode = "INVALID_EVIDENCE_ID"
	// CodeWeakVerb flags improved text that still leads with a weak verb
	CodeWeakVerb ValidationCode = "WEAK_VERB"
	// CodeLowOverlap flags improved text that barely resembles the original claim
	CodeLowOverlap ValidationCode = "LOW_OVERLAP"
)

// Severity is the blocking level of a validation item
type Severity string

// Severity constants
const (
	// SeverityCritical blocks the rewrite from passing validation
	SeverityCritical Severity = "critical"
	// SeverityWarning is surfaced but does not block
	SeverityWarning Severity = "warning"
)

// ValidationItem is a single validation finding
type ValidationItem struct {
	Code     ValidationCode `json:"code"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
}

// ValidationResult is the outcome of validating one rewrite attempt.
// Passed is true iff no item has critical severity.
type ValidationResult struct {
	Passed bool             `json:"passed"`
	Items  []ValidationItem `json:"items"`
}

// NewValidationResult builds a result, deriving Passed from the items.
func NewValidationResult(items []ValidationItem) ValidationResult {
	for _, item := range items {
		if item.Severity == SeverityCritical {
			return ValidationResult{Passed: false, Items: items}
		}
	}
	return ValidationResult{Passed: true, Items: items}
}

// CriticalCount returns the number of critical items.
func (r *ValidationResult) CriticalCount() int {
	count := 0
	for _, item := range r.Items {
		if item.Severity == SeverityCritical {
			count++
		}
	}
	return count
}
