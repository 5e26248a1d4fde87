package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/rewrite-engine/internal/types"
)

func TestTemperatureForAttempt_Schedule(t *testing.T) {
	tests := []struct {
		name        string
		contentType types.ContentType
		attempt     int
		want        float32
	}{
		{name: "bullet first attempt", contentType: types.ContentBullet, attempt: 0, want: 0.3},
		{name: "bullet first retry", contentType: types.ContentBullet, attempt: 1, want: 0.2},
		{name: "bullet clamped to floor", contentType: types.ContentBullet, attempt: 5, want: 0.1},
		{name: "summary first attempt", contentType: types.ContentSummary, attempt: 0, want: 0.7},
		{name: "summary clamped to floor", contentType: types.ContentSummary, attempt: 10, want: 0.3},
		{name: "section first attempt", contentType: types.ContentSection, attempt: 0, want: 0.4},
		{name: "negative attempt treated as first", contentType: types.ContentBullet, attempt: -1, want: 0.3},
		{name: "unknown type uses bullet schedule", contentType: types.ContentType("unknown"), attempt: 0, want: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TemperatureForAttempt(tt.contentType, tt.attempt), 0.0001)
		})
	}
}

func TestTemperatureForAttempt_MonotonicallyNonIncreasing(t *testing.T) {
	for _, contentType := range []types.ContentType{types.ContentBullet, types.ContentSection, types.ContentSummary} {
		prev := TemperatureForAttempt(contentType, 0)
		for attempt := 1; attempt < 8; attempt++ {
			current := TemperatureForAttempt(contentType, attempt)
			assert.LessOrEqual(t, current, prev, "%s attempt %d", contentType, attempt)
			prev = current
		}
	}
}
