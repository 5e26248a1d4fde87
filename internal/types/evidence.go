// Package types provides type definitions for structured data used throughout the rewrite-engine system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// EvidenceType classifies where an evidence item came from
type EvidenceType string

// Evidence type constants define the closed set of evidence categories
const (
	// EvidenceBullet is the original bullet text itself (self-evidence)
	EvidenceBullet EvidenceType = "bullet"
	// EvidenceSection is an original section of text (self-evidence for section rewrites)
	EvidenceSection EvidenceType = "section"
	// EvidenceSkills is an externally extracted skill list
	EvidenceSkills EvidenceType = "skills"
	// EvidenceTools is an externally extracted tool/technology list
	EvidenceTools EvidenceType = "tools"
	// EvidenceTitles is an externally extracted job title list
	EvidenceTitles EvidenceType = "titles"
	// EvidenceIndustries is an externally extracted industry list
	EvidenceIndustries EvidenceType = "industries"
)

// EvidenceItem is an atomic, immutable fact that can ground a claim in generated text.
// Identity is the ID; IDs are unique within a ledger.
type EvidenceItem struct {
	ID              string       `json:"id"`
	Type            EvidenceType `json:"type"`
	Text            string       `json:"text"`
	NormalizedTerms []string     `json:"normalized_terms"`
}

// EvidenceLedger is the closed set of evidence items available to a single
// rewrite request. Built once per request, read-only afterward.
type EvidenceLedger struct {
	Items []EvidenceItem `json:"items"`
}

// ItemByID returns the evidence item with the given ID, if present.
func (l *EvidenceLedger) ItemByID(id string) (*EvidenceItem, bool) {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i], true
		}
	}
	return nil, false
}

// EvidenceMapItem asserts that a substring of the improved text is supported
// by the referenced evidence items.
type EvidenceMapItem struct {
	ImprovedSpan string   `json:"improved_span"`
	EvidenceIDs  []string `json:"evidence_ids"`
}
