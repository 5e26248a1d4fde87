package types

// ContentType discriminates the closed set of rewrite request variants
type ContentType string

// Content type constants
const (
	// ContentBullet is a single experience bullet
	ContentBullet ContentType = "bullet"
	// ContentSummary is a professional summary paragraph
	ContentSummary ContentType = "summary"
	// ContentSection is a group of bullets under one section heading
	ContentSection ContentType = "section"
)

// ExtractedEntities are entity lists supplied by the upstream extraction layer.
// All fields are optional; empty categories emit no evidence items.
type ExtractedEntities struct {
	Skills     []string `json:"skills,omitempty"`
	Tools      []string `json:"tools,omitempty"`
	Titles     []string `json:"titles,omitempty"`
	Industries []string `json:"industries,omitempty"`
}

// BulletRequest asks for a rewrite of a single bullet
type BulletRequest struct {
	Bullet    string             `json:"bullet" validate:"required,min=3,max=600"`
	Issues    []string           `json:"issues,omitempty"`
	Extracted *ExtractedEntities `json:"extracted,omitempty"`
}

// SummaryRequest asks for a rewrite of a professional summary
type SummaryRequest struct {
	Summary    string             `json:"summary" validate:"required,min=3,max=2000"`
	TargetRole string             `json:"target_role,omitempty" validate:"max=120"`
	Extracted  *ExtractedEntities `json:"extracted,omitempty"`
}

// SectionRequest asks for a rewrite of all bullets in one section
type SectionRequest struct {
	Bullets      []string           `json:"bullets" validate:"required,min=1,max=30,dive,required,min=3,max=600"`
	SectionTitle string             `json:"section_title" validate:"max=120"`
	TargetRole   string             `json:"target_role,omitempty" validate:"max=120"`
	Extracted    *ExtractedEntities `json:"extracted,omitempty"`
}

// RewriteRequest is the tagged union over the request variants. Exactly one
// variant field must be set, matching Type.
type RewriteRequest struct {
	Type    ContentType     `json:"type" validate:"required,oneof=bullet summary section"`
	Bullet  *BulletRequest  `json:"bullet,omitempty"`
	Summary *SummaryRequest `json:"summary,omitempty"`
	Section *SectionRequest `json:"section,omitempty"`
}

// RewriteResult is the outcome of one rewrite request. Produced once per
// request and not mutated after return.
type RewriteResult struct {
	RequestID   string            `json:"request_id"`
	Original    string            `json:"original"`
	Improved    string            `json:"improved"`
	EvidenceMap []EvidenceMapItem `json:"evidence_map"`
	Validation  ValidationResult  `json:"validation"`
	Reasoning   string            `json:"reasoning,omitempty"`
	Attempts    int               `json:"attempts"`
}

// SectionResult is the outcome of a section rewrite: one result per bullet,
// in the order the bullets were supplied.
type SectionResult struct {
	SectionTitle string          `json:"section_title,omitempty"`
	Results      []RewriteResult `json:"results"`
}
