package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidationResult(t *testing.T) {
	empty := NewValidationResult(nil)
	assert.True(t, empty.Passed)
	assert.Equal(t, 0, empty.CriticalCount())

	warningsOnly := NewValidationResult([]ValidationItem{
		{Code: CodeWeakVerb, Severity: SeverityWarning},
		{Code: CodeLowOverlap, Severity: SeverityWarning},
	})
	assert.True(t, warningsOnly.Passed)
	assert.Equal(t, 0, warningsOnly.CriticalCount())

	mixed := NewValidationResult([]ValidationItem{
		{Code: CodeWeakVerb, Severity: SeverityWarning},
		{Code: CodeNewNumberAdded, Severity: SeverityCritical},
		{Code: CodeNewToolAdded, Severity: SeverityCritical},
	})
	assert.False(t, mixed.Passed)
	assert.Equal(t, 2, mixed.CriticalCount())
}

func TestEvidenceLedger_ItemByID(t *testing.T) {
	ledger := &EvidenceLedger{Items: []EvidenceItem{
		{ID: "E1", Type: EvidenceBullet, Text: "Built API"},
		{ID: "E_skills", Type: EvidenceSkills, Text: "Python"},
	}}

	item, ok := ledger.ItemByID("E_skills")
	assert.True(t, ok)
	assert.Equal(t, "Python", item.Text)

	_, ok = ledger.ItemByID("E_missing")
	assert.False(t, ok)
}
