package coherence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rewrite-engine/internal/lexicon"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	lex, err := lexicon.Load()
	require.NoError(t, err)
	return New(lex)
}

func TestDetectBulletTense(t *testing.T) {
	p := newTestProcessor(t)

	tests := []struct {
		name string
		text string
		want Tense
	}{
		{name: "table past", text: "Developed the billing service", want: TensePast},
		{name: "table present", text: "Manage the on-call rotation", want: TensePresent},
		{name: "third person present", text: "Manages a team of five", want: TensePresent},
		{name: "ed heuristic outside table", text: "Refactored the legacy parser", want: TensePast},
		{name: "irregular past in table", text: "Oversaw quarterly planning", want: TensePast},
		{name: "non-verb lead", text: "Responsible for deployments", want: TenseOther},
		{name: "empty", text: "", want: TenseOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.DetectBulletTense(tt.text))
		})
	}
}

func TestDetectDominantTense(t *testing.T) {
	p := newTestProcessor(t)

	tests := []struct {
		name    string
		bullets []string
		want    DominantTense
	}{
		{
			name:    "unanimous past is high confidence",
			bullets: []string{"Developed X", "Built Y", "Created Z", "Implemented W"},
			want:    DominantTense{Tense: TensePast, Confidence: ConfidenceHigh},
		},
		{
			name:    "simple majority is medium confidence",
			bullets: []string{"Developed X", "Built Y", "Manage Z"},
			want:    DominantTense{Tense: TensePast, Confidence: ConfidenceMedium},
		},
		{
			name:    "tie is low confidence",
			bullets: []string{"Developed X", "Manage Y"},
			want:    DominantTense{Tense: TensePast, Confidence: ConfidenceLow},
		},
		{
			name:    "empty set",
			bullets: nil,
			want:    DominantTense{Tense: TenseOther, Confidence: ConfidenceLow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.DetectDominantTense(tt.bullets))
		})
	}
}

func TestUnifyToDominant(t *testing.T) {
	p := newTestProcessor(t)

	unified := p.UnifyToDominant([]string{
		"Built pipelines for the data team",
		"Manage release automation",
		"Created dashboards for on-call",
	})

	assert.Equal(t, []string{
		"Built pipelines for the data team",
		"Managed release automation",
		"Created dashboards for on-call",
	}, unified)
}

func TestUnifyToDominant_ThirdPersonPresent(t *testing.T) {
	p := newTestProcessor(t)

	unified := p.UnifyToDominant([]string{
		"Shipped the mobile release",
		"Delivered the partner API",
		"Manages vendor relationships",
	})
	assert.Equal(t, "Managed vendor relationships", unified[2])
}

func TestUnifyToDominant_UnknownVerbLeftAlone(t *testing.T) {
	p := newTestProcessor(t)

	bullets := []string{
		"Developed the ingestion service",
		"Built the reporting layer",
		"Refactoring the legacy parser",
	}
	unified := p.UnifyToDominant(bullets)
	assert.Equal(t, "Refactoring the legacy parser", unified[2], "verbs outside the tense tables are untouched")
}

func TestUnifyToDominant_DominantOtherIsNoOp(t *testing.T) {
	p := newTestProcessor(t)

	bullets := []string{"Responsible for deployments", "Point of contact for vendors"}
	unified := p.UnifyToDominant(bullets)
	assert.Equal(t, bullets, unified)
}
