package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{name: "identical", a: []string{"a", "b"}, b: []string{"a", "b"}, want: 1.0},
		{name: "disjoint", a: []string{"a"}, b: []string{"b"}, want: 0.0},
		{name: "partial", a: []string{"a", "b"}, b: []string{"b", "c"}, want: 1.0 / 3.0},
		{name: "both empty", a: nil, b: nil, want: 1.0},
		{name: "duplicates collapse", a: []string{"a", "a", "b"}, b: []string{"a"}, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, JaccardSimilarity(tt.a, tt.b), 0.0001)
		})
	}
}

func TestOverlapCoefficient(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{name: "subset scores full overlap", a: []string{"a", "b", "c"}, b: []string{"b"}, want: 1.0},
		{name: "disjoint", a: []string{"a"}, b: []string{"b"}, want: 0.0},
		{name: "partial", a: []string{"a", "b"}, b: []string{"b", "c"}, want: 0.5},
		{name: "one empty", a: nil, b: []string{"a"}, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OverlapCoefficient(tt.a, tt.b), 0.0001)
		})
	}
}
