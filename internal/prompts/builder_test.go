package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rewrite-engine/internal/types"
)

func testLedger() *types.EvidenceLedger {
	return &types.EvidenceLedger{
		Items: []types.EvidenceItem{
			{ID: "E1", Type: types.EvidenceBullet, Text: "Helped with backend development", NormalizedTerms: []string{"helped", "with", "backend", "development"}},
			{ID: "E_skills", Type: types.EvidenceSkills, Text: "Python, Node.js", NormalizedTerms: []string{"python", "node.js"}},
		},
	}
}

func testPlan() *types.RewritePlan {
	return &types.RewritePlan{
		Transformations: []types.MicroAction{
			{Type: types.ActionVerbUpgrade, Data: map[string]string{"weak_verb": "helped with", "replacements": "led, drove"}},
			{Type: types.ActionToolSurfacing, Data: map[string]string{"terms": "python"}, EvidenceIDs: []string{"E_skills"}},
		},
		Constraints: types.RewriteConstraints{MaxLength: 220},
	}
}

func TestGet_KnownKeys(t *testing.T) {
	for _, key := range []string{"bullet-system", "bullet-user", "summary-system", "summary-user", "retry-errors", "strict-constraints"} {
		template, err := Get("rewrite.json", key)
		require.NoError(t, err, "key %s", key)
		assert.NotEmpty(t, template)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("rewrite.json", "missing-key")
	assert.Error(t, err)

	_, err = Get("missing.json", "bullet-system")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	result := Format("Rewrite {{.Original}} under {{.MaxLength}} chars", map[string]string{
		"Original":  "the bullet",
		"MaxLength": "220",
	})
	assert.Equal(t, "Rewrite the bullet under 220 chars", result)
}

func TestBuildBulletPrompt(t *testing.T) {
	prompt := BuildBulletPrompt("Helped with backend development", testLedger(), testPlan())

	assert.NotEmpty(t, prompt.System)
	assert.Contains(t, prompt.User, "Helped with backend development")
	assert.Contains(t, prompt.User, "E1 [bullet]")
	assert.Contains(t, prompt.User, "E_skills [skills]: Python, Node.js")
	assert.Contains(t, prompt.User, "verb_upgrade")
	assert.Contains(t, prompt.User, "[evidence: E_skills]")
	assert.Contains(t, prompt.User, "220")
	assert.NotContains(t, prompt.User, "{{.")
}

func TestBuildBulletPrompt_EmptyPlan(t *testing.T) {
	plan := &types.RewritePlan{Constraints: types.RewriteConstraints{MaxLength: 220}}
	prompt := BuildBulletPrompt("Led the migration", testLedger(), plan)
	assert.Contains(t, prompt.User, "none")
}

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := BuildSummaryPrompt("Experienced engineer", "Staff Engineer", testLedger(), 650)

	assert.NotEmpty(t, prompt.System)
	assert.Contains(t, prompt.User, "Experienced engineer")
	assert.Contains(t, prompt.User, "Target role: Staff Engineer")
	assert.Contains(t, prompt.User, "650")
	assert.NotContains(t, prompt.User, "{{.")
}

func TestBuildSummaryPrompt_NoRole(t *testing.T) {
	prompt := BuildSummaryPrompt("Experienced engineer", "", testLedger(), 650)
	assert.NotContains(t, prompt.User, "Target role")
}

func TestBuildRetryPrompt(t *testing.T) {
	base := BuildBulletPrompt("Helped with backend development", testLedger(), testPlan())
	failures := []types.ValidationItem{
		{Code: types.CodeNewNumberAdded, Severity: types.SeverityCritical, Message: `number "1m" is not present in the original text or any evidence`},
	}

	retry := BuildRetryPrompt(base, failures)
	assert.Equal(t, base.System, retry.System)
	assert.Contains(t, retry.User, "NEW_NUMBER_ADDED")
	assert.Contains(t, retry.User, `"1m"`)
	// The error list is prepended; the base instructions survive intact.
	assert.Contains(t, retry.User, base.User)

	assert.Equal(t, base, BuildRetryPrompt(base, nil))
}

func TestAddStrictConstraints(t *testing.T) {
	base := BuildBulletPrompt("Helped with backend development", testLedger(), testPlan())

	strict := AddStrictConstraints(base, types.RewriteConstraints{MaxLength: 220})
	assert.Contains(t, strict.User, "NON-NEGOTIABLE")
	assert.NotContains(t, strict.User, "Explicitly forbidden")

	withTokens := AddStrictConstraints(base, types.RewriteConstraints{
		MaxLength:        220,
		ForbiddenNumbers: []string{"1m", "40%"},
		ForbiddenTools:   []string{"kubernetes"},
	})
	assert.Contains(t, withTokens.User, "Explicitly forbidden")
	assert.Contains(t, withTokens.User, "numbers: 1m, 40%")
	assert.Contains(t, withTokens.User, "tools: kubernetes")
}
