package prompts

import (
	"fmt"
	"strings"

	"github.com/jonathan/rewrite-engine/internal/types"
)

// Prompt is a {system, user} instruction pair for the generation backend.
type Prompt struct {
	System string
	User   string
}

// BuildBulletPrompt renders the bullet rewrite instructions from the
// original text, the evidence ledger, and the transformation plan.
func BuildBulletPrompt(original string, ledger *types.EvidenceLedger, plan *types.RewritePlan) Prompt {
	return Prompt{
		System: MustGet("rewrite.json", "bullet-system"),
		User: Format(MustGet("rewrite.json", "bullet-user"), map[string]string{
			"Original":  original,
			"Evidence":  renderEvidence(ledger),
			"Plan":      renderPlan(plan),
			"MaxLength": fmt.Sprintf("%d", plan.Constraints.MaxLength),
		}),
	}
}

// BuildSummaryPrompt renders the summary rewrite instructions. Summaries have
// no micro-action plan; the ledger alone constrains them.
func BuildSummaryPrompt(original, targetRole string, ledger *types.EvidenceLedger, maxLength int) Prompt {
	roleLine := ""
	if targetRole != "" {
		roleLine = fmt.Sprintf("Target role: %s\n\n", targetRole)
	}
	return Prompt{
		System: MustGet("rewrite.json", "summary-system"),
		User: Format(MustGet("rewrite.json", "summary-user"), map[string]string{
			"Original":  original,
			"RoleLine":  roleLine,
			"Evidence":  renderEvidence(ledger),
			"MaxLength": fmt.Sprintf("%d", maxLength),
		}),
	}
}

// BuildRetryPrompt prefixes the prior attempt's validation failures to the
// user instructions as an explicit error list.
func BuildRetryPrompt(base Prompt, failures []types.ValidationItem) Prompt {
	if len(failures) == 0 {
		return base
	}
	var sb strings.Builder
	for _, failure := range failures {
		sb.WriteString(fmt.Sprintf("- [%s] %s\n", failure.Code, failure.Message))
	}
	prefix := Format(MustGet("rewrite.json", "retry-errors"), map[string]string{
		"Errors": strings.TrimRight(sb.String(), "\n"),
	})
	return Prompt{System: base.System, User: prefix + base.User}
}

// AddStrictConstraints appends the non-negotiable no-unlisted-claims clause,
// rendering any concrete forbidden tokens collected from rejected attempts.
func AddStrictConstraints(base Prompt, constraints types.RewriteConstraints) Prompt {
	forbidden := ""
	var parts []string
	if len(constraints.ForbiddenNumbers) > 0 {
		parts = append(parts, "numbers: "+strings.Join(constraints.ForbiddenNumbers, ", "))
	}
	if len(constraints.ForbiddenTools) > 0 {
		parts = append(parts, "tools: "+strings.Join(constraints.ForbiddenTools, ", "))
	}
	if len(constraints.ForbiddenCompanies) > 0 {
		parts = append(parts, "companies: "+strings.Join(constraints.ForbiddenCompanies, ", "))
	}
	if len(parts) > 0 {
		forbidden = "\nExplicitly forbidden (already rejected): " + strings.Join(parts, "; ") + "."
	}
	clause := Format(MustGet("rewrite.json", "strict-constraints"), map[string]string{
		"Forbidden": forbidden,
	})
	return Prompt{System: base.System, User: base.User + clause}
}

// renderEvidence lists each ledger item as "id [type]: text".
func renderEvidence(ledger *types.EvidenceLedger) string {
	var sb strings.Builder
	for _, item := range ledger.Items {
		sb.WriteString(fmt.Sprintf("%s [%s]: %s\n", item.ID, item.Type, item.Text))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderPlan lists each transformation with its payload and evidence IDs.
func renderPlan(plan *types.RewritePlan) string {
	if plan == nil || len(plan.Transformations) == 0 {
		return "- none: the text is already close to its strongest grounded form"
	}
	var sb strings.Builder
	for _, action := range plan.Transformations {
		sb.WriteString(fmt.Sprintf("- %s", action.Type))
		if len(action.Data) > 0 {
			var pairs []string
			for _, key := range sortedKeys(action.Data) {
				pairs = append(pairs, fmt.Sprintf("%s=%s", key, action.Data[key]))
			}
			sb.WriteString(" (" + strings.Join(pairs, "; ") + ")")
		}
		if len(action.EvidenceIDs) > 0 {
			sb.WriteString(" [evidence: " + strings.Join(action.EvidenceIDs, ", ") + "]")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
