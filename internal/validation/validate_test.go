package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rewrite-engine/internal/evidence"
	"github.com/jonathan/rewrite-engine/internal/types"
)

func mustLedger(t *testing.T, original string, extracted *types.ExtractedEntities) *types.EvidenceLedger {
	t.Helper()
	ledger, err := evidence.Build(original, extracted)
	require.NoError(t, err)
	return ledger
}

func selfMap(span string) []types.EvidenceMapItem {
	return []types.EvidenceMapItem{
		{ImprovedSpan: span, EvidenceIDs: []string{evidence.SelfEvidenceID}},
	}
}

func codesOf(items []types.ValidationItem) []types.ValidationCode {
	codes := make([]types.ValidationCode, 0, len(items))
	for _, item := range items {
		codes = append(codes, item.Code)
	}
	return codes
}

func TestValidateEvidenceMap_InvalidID(t *testing.T) {
	v := New(testLexicon(t))
	ledger := mustLedger(t, "Built API", nil)

	evidenceMap := []types.EvidenceMapItem{
		{ImprovedSpan: "API serving", EvidenceIDs: []string{"INVALID_ID_123"}},
	}

	items := v.ValidateEvidenceMap("Built API serving clients", evidenceMap, ledger)
	require.Len(t, items, 1)
	assert.Equal(t, types.CodeInvalidEvidenceID, items[0].Code)
	assert.Equal(t, types.SeverityCritical, items[0].Severity)
	assert.Contains(t, items[0].Message, "INVALID_ID_123")
}

func TestValidateEvidenceMap_ValidIDs(t *testing.T) {
	v := New(testLexicon(t))
	ledger := mustLedger(t, "Built API", &types.ExtractedEntities{Skills: []string{"Go"}})

	evidenceMap := []types.EvidenceMapItem{
		{ImprovedSpan: "Built API", EvidenceIDs: []string{evidence.SelfEvidenceID, evidence.SkillsEvidenceID}},
	}

	assert.Empty(t, v.ValidateEvidenceMap("Built API in Go", evidenceMap, ledger))
}

func TestValidateRewrite_FabricatedNumber(t *testing.T) {
	v := New(testLexicon(t))
	original := "Built API"
	improved := "Built API serving 1M+ requests/day"
	ledger := mustLedger(t, original, nil)

	result := v.ValidateRewrite(original, improved, ledger, selfMap("Built API"))

	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.CriticalCount())
	assert.Contains(t, codesOf(result.Items), types.CodeNewNumberAdded)
	assert.True(t, HasFabricationErrors(result))
}

func TestValidateRewrite_NumberTracedToOriginal(t *testing.T) {
	v := New(testLexicon(t))
	original := "Reduced costs by 40%"
	improved := "Achieved 40% reduction in infrastructure costs"
	ledger := mustLedger(t, original, nil)

	result := v.ValidateRewrite(original, improved, ledger, selfMap("40% reduction"))

	assert.True(t, result.Passed)
	assert.NotContains(t, codesOf(result.Items), types.CodeNewNumberAdded)
	assert.False(t, HasFabricationErrors(result))
}

func TestValidateRewrite_NumberGroundedInEntityEvidence(t *testing.T) {
	v := New(testLexicon(t))
	original := "Worked on checkout performance"
	improved := "Cut checkout latency by 40%"
	ledger := mustLedger(t, original, &types.ExtractedEntities{
		Skills: []string{"40% latency reduction"},
	})

	result := v.ValidateRewrite(original, improved, ledger, []types.EvidenceMapItem{
		{ImprovedSpan: "40%", EvidenceIDs: []string{evidence.SkillsEvidenceID}},
	})

	assert.NotContains(t, codesOf(result.Items), types.CodeNewNumberAdded)
}

func TestValidateRewrite_FabricatedTool(t *testing.T) {
	v := New(testLexicon(t))
	original := "Improved the deployment workflow"
	improved := "Improved the deployment workflow with Kubernetes"
	ledger := mustLedger(t, original, nil)

	result := v.ValidateRewrite(original, improved, ledger, selfMap("deployment workflow"))

	assert.False(t, result.Passed)
	assert.Contains(t, codesOf(result.Items), types.CodeNewToolAdded)
	assert.True(t, HasFabricationErrors(result))
}

func TestValidateRewrite_ToolGroundedInLedger(t *testing.T) {
	v := New(testLexicon(t))
	original := "Improved the deployment workflow"
	improved := "Improved the deployment workflow with Kubernetes"
	ledger := mustLedger(t, original, &types.ExtractedEntities{
		Tools: []string{"Kubernetes"},
	})

	result := v.ValidateRewrite(original, improved, ledger, []types.EvidenceMapItem{
		{ImprovedSpan: "with Kubernetes", EvidenceIDs: []string{evidence.ToolsEvidenceID}},
	})

	assert.NotContains(t, codesOf(result.Items), types.CodeNewToolAdded)
	assert.True(t, result.Passed)
}

func TestValidateRewrite_ToolNotGroundedBySubstringOfLedgerTerm(t *testing.T) {
	v := New(testLexicon(t))
	original := "Built web app"
	improved := "Built web app in Go using Django"
	ledger := mustLedger(t, original, &types.ExtractedEntities{
		Skills: []string{"Django"},
	})

	result := v.ValidateRewrite(original, improved, ledger, []types.EvidenceMapItem{
		{ImprovedSpan: "using Django", EvidenceIDs: []string{evidence.SkillsEvidenceID}},
	})

	// "Django" is grounded; "go" appearing inside "django" must not be.
	assert.False(t, result.Passed)
	require.Equal(t, 1, result.CriticalCount())
	critical := CriticalErrors(result)[0]
	assert.Equal(t, types.CodeNewToolAdded, critical.Code)
	assert.Contains(t, critical.Message, `"Go"`)
}

func TestValidateRewrite_ToolNotGroundedByTermPrefix(t *testing.T) {
	v := New(testLexicon(t))
	original := "Built web app"
	improved := "Built web app in Java"
	ledger := mustLedger(t, original, &types.ExtractedEntities{
		Skills: []string{"JavaScript"},
	})

	result := v.ValidateRewrite(original, improved, ledger, []types.EvidenceMapItem{
		{ImprovedSpan: "web app", EvidenceIDs: []string{evidence.SelfEvidenceID}},
	})

	assert.False(t, result.Passed)
	assert.Contains(t, codesOf(CriticalErrors(result)), types.CodeNewToolAdded)
}

func TestValidateRewrite_ToolNotGroundedByOriginalSubstring(t *testing.T) {
	v := New(testLexicon(t))
	original := "Built the JavaScript frontend"
	improved := "Built the JavaScript frontend and Java tooling"
	ledger := mustLedger(t, original, nil)

	result := v.ValidateRewrite(original, improved, ledger, selfMap("JavaScript frontend"))

	// "JavaScript" is kept from the original; "Java" is a new claim.
	assert.False(t, result.Passed)
	require.Equal(t, 1, result.CriticalCount())
	critical := CriticalErrors(result)[0]
	assert.Equal(t, types.CodeNewToolAdded, critical.Code)
	assert.Contains(t, critical.Message, `"Java"`)
}

func TestValidateRewrite_ToolGroundedInsideMultiWordTerm(t *testing.T) {
	v := New(testLexicon(t))
	original := "Worked on event streaming"
	improved := "Engineered event streaming on Kafka"
	ledger := mustLedger(t, original, &types.ExtractedEntities{
		Skills: []string{"Apache Kafka"},
	})

	result := v.ValidateRewrite(original, improved, ledger, []types.EvidenceMapItem{
		{ImprovedSpan: "on Kafka", EvidenceIDs: []string{evidence.SkillsEvidenceID}},
	})

	// "Apache Kafka" grounds "Kafka" on a whole-token match.
	assert.NotContains(t, codesOf(result.Items), types.CodeNewToolAdded)
	assert.True(t, result.Passed)
}

func TestValidateRewrite_FabricatedCompany(t *testing.T) {
	v := New(testLexicon(t))
	original := "Shipped partner integrations"
	improved := "Shipped partner integrations for Goldman Sachs"
	ledger := mustLedger(t, original, nil)

	result := v.ValidateRewrite(original, improved, ledger, selfMap("partner integrations"))

	assert.False(t, result.Passed)
	assert.Contains(t, codesOf(result.Items), types.CodeNewCompanyAdded)
}

func TestValidateRewrite_CompanyGroundedBySubstring(t *testing.T) {
	v := New(testLexicon(t))
	original := "Migrated workloads to managed infrastructure"
	improved := "Migrated workloads with Google Cloud support"
	ledger := mustLedger(t, original, &types.ExtractedEntities{
		Industries: []string{"Google Cloud Platform"},
	})

	result := v.ValidateRewrite(original, improved, ledger, []types.EvidenceMapItem{
		{ImprovedSpan: "Google Cloud", EvidenceIDs: []string{evidence.IndustriesEvidenceID}},
	})

	assert.NotContains(t, codesOf(result.Items), types.CodeNewCompanyAdded)
}

func TestValidateRewrite_UnsupportedScaleClaim(t *testing.T) {
	v := New(testLexicon(t))
	original := "Maintained internal services"
	improved := "Maintained massive internal services"
	ledger := mustLedger(t, original, nil)

	result := v.ValidateRewrite(original, improved, ledger, selfMap("internal services"))

	assert.False(t, result.Passed)
	assert.Contains(t, codesOf(result.Items), types.CodeUnsupportedScaleClaim)
}

func TestValidateRewrite_EmptyMapFailsClosed(t *testing.T) {
	v := New(testLexicon(t))
	original := "Built API"
	improved := "Built the API"
	ledger := mustLedger(t, original, nil)

	result := v.ValidateRewrite(original, improved, ledger, nil)

	assert.False(t, result.Passed)
	require.Equal(t, 1, result.CriticalCount())
	assert.Equal(t, types.CodeInvalidEvidenceID, CriticalErrors(result)[0].Code)
	// Nothing was fabricated; the attempt is unreleasable for integrity reasons.
	assert.False(t, HasFabricationErrors(result))
}

func TestValidateRewrite_UnchangedTextWithEmptyMapPasses(t *testing.T) {
	v := New(testLexicon(t))
	original := "Reduced checkout latency by 40% using Redis"
	ledger := mustLedger(t, original, nil)

	result := v.ValidateRewrite(original, original, ledger, nil)
	assert.True(t, result.Passed)
}

func TestValidateRewrite_WeakVerbWarningDoesNotBlock(t *testing.T) {
	v := New(testLexicon(t))
	original := "Helped with backend development"
	improved := "Helped with backend development tasks"
	ledger := mustLedger(t, original, nil)

	result := v.ValidateRewrite(original, improved, ledger, selfMap("backend development"))

	assert.True(t, result.Passed)
	assert.Empty(t, CriticalErrors(result))
	warnings := Warnings(result)
	require.Len(t, warnings, 1)
	assert.Equal(t, types.CodeWeakVerb, warnings[0].Code)
}

func TestValidateRewrite_LowOverlapWarning(t *testing.T) {
	v := New(testLexicon(t))
	original := "Built API"
	improved := "Delivered measurable value across the organization every quarter"
	ledger := mustLedger(t, original, nil)

	result := v.ValidateRewrite(original, improved, ledger, selfMap("measurable value"))

	assert.Contains(t, codesOf(Warnings(result)), types.CodeLowOverlap)
}
