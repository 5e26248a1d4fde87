package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rewrite-engine/internal/lexicon"
)

func newTestPlanner(t *testing.T) *Planner {
	t.Helper()
	lex, err := lexicon.Load()
	require.NoError(t, err)
	return New(lex)
}

func TestDetectWeakVerb(t *testing.T) {
	p := newTestPlanner(t)

	tests := []struct {
		name       string
		text       string
		wantPhrase string
		wantFound  bool
	}{
		{
			name:       "multi-word phrase wins over prefix",
			text:       "Helped with backend development",
			wantPhrase: "helped with",
			wantFound:  true,
		},
		{
			name:       "single weak verb",
			text:       "Handled customer escalations",
			wantPhrase: "handled",
			wantFound:  true,
		},
		{
			name:       "case insensitive",
			text:       "WORKED ON the billing service",
			wantPhrase: "worked on",
			wantFound:  true,
		},
		{
			name:      "strong verb not flagged",
			text:      "Led the migration to Kubernetes",
			wantFound: false,
		},
		{
			name:      "weak verb mid-sentence not flagged",
			text:      "Team helped ship the release",
			wantFound: false,
		},
		{
			name:      "empty text",
			text:      "   ",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, found := p.DetectWeakVerb(tt.text)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				require.NotNil(t, match)
				assert.Equal(t, tt.wantPhrase, match.Phrase)
				assert.NotEmpty(t, match.Replacements)
			}
		})
	}
}

func TestDetectFluff_WordBoundaries(t *testing.T) {
	p := newTestPlanner(t)

	matches := p.DetectFluff("Very successfully delivered the launch")
	phrases := make([]string, 0, len(matches))
	for _, m := range matches {
		phrases = append(phrases, m.Phrase)
	}
	assert.Contains(t, phrases, "very")
	assert.Contains(t, phrases, "successfully")

	// "every" must not trigger the "very" phrase.
	assert.Empty(t, p.DetectFluff("Tested every failure path"))
	assert.False(t, p.HasFluff("Tested every failure path"))
}

func TestDetectMetrics(t *testing.T) {
	p := newTestPlanner(t)

	tests := []struct {
		name    string
		text    string
		want    string
		hasAny  bool
	}{
		{name: "percentage", text: "Reduced costs by 40%", want: "40%", hasAny: true},
		{name: "dollar amount", text: "Saved $1,200 per month", want: "$1,200", hasAny: true},
		{name: "multiplier", text: "Improved throughput 3x", want: "3x", hasAny: true},
		{name: "count with plus", text: "Supported 500+ merchants", want: "500+", hasAny: true},
		{name: "no metric", text: "Improved the onboarding flow", hasAny: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := p.DetectMetrics(tt.text)
			assert.Equal(t, tt.hasAny, p.HasMetric(tt.text))
			if tt.hasAny {
				values := make([]string, 0, len(matches))
				for _, m := range matches {
					values = append(values, m.Value)
				}
				assert.Contains(t, values, tt.want)
			} else {
				assert.Empty(t, matches)
			}
		})
	}
}

func TestDetectImpliedMetrics(t *testing.T) {
	p := newTestPlanner(t)

	assert.Equal(t, []string{"several"}, p.DetectImpliedMetrics("Managed several projects"))
	assert.Contains(t, p.DetectImpliedMetrics("Handled a number of incidents"), "a number of")
	assert.Empty(t, p.DetectImpliedMetrics("Managed 12 projects"))
}
