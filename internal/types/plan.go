package types

// ActionType identifies one atomic planned transformation
type ActionType string

// Micro-action type constants
const (
	// ActionVerbUpgrade replaces a weak leading verb with a stronger one
	ActionVerbUpgrade ActionType = "verb_upgrade"
	// ActionFluffRemoval removes a filler phrase
	ActionFluffRemoval ActionType = "fluff_removal"
	// ActionMetricSurfacing surfaces a metric already present in evidence
	ActionMetricSurfacing ActionType = "metric_surfacing"
	// ActionToolSurfacing mentions a tool present in evidence but absent from the text
	ActionToolSurfacing ActionType = "tool_surfacing"
	// ActionSpecificityIncrease replaces vague language with concrete detail
	ActionSpecificityIncrease ActionType = "specificity_increase"
	// ActionRoleTailoring aligns phrasing with a target role
	ActionRoleTailoring ActionType = "role_tailoring"
)

// MicroAction is one planned transformation. EvidenceIDs is required
// (non-empty) for tool_surfacing and metric_surfacing actions.
type MicroAction struct {
	Type        ActionType        `json:"type"`
	Data        map[string]string `json:"data,omitempty"`
	EvidenceIDs []string          `json:"evidence_ids,omitempty"`
}

// RewriteConstraints are hard limits derived from the evidence ledger.
// Anything not in evidence is implicitly forbidden; the explicit sets below
// carry concrete tokens that were rejected on earlier attempts so they can be
// rendered verbatim into retry prompts.
type RewriteConstraints struct {
	MaxLength          int      `json:"max_length"`
	ForbiddenNumbers   []string `json:"forbidden_numbers,omitempty"`
	ForbiddenTools     []string `json:"forbidden_tools,omitempty"`
	ForbiddenCompanies []string `json:"forbidden_companies,omitempty"`
}

// RewritePlan is an ordered transformation plan with hard constraints.
// Plans are created per request and never mutated between retry attempts.
type RewritePlan struct {
	Transformations []MicroAction      `json:"transformations"`
	Constraints     RewriteConstraints `json:"constraints"`
}
