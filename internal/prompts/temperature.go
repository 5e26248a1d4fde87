package prompts

import "github.com/jonathan/rewrite-engine/internal/types"

// Temperature schedule per content type. Bullets are factual and get the
// lowest base; summaries allow more stylistic freedom. Each rejected attempt
// decays the temperature by a fixed step toward the type's floor, encoding
// "be more conservative after each rejection". This is an engine design
// decision, not a backend constraint.
const temperatureStep = 0.1

var temperatureBase = map[types.ContentType]float32{
	types.ContentBullet:  0.3,
	types.ContentSection: 0.4,
	types.ContentSummary: 0.7,
}

var temperatureFloor = map[types.ContentType]float32{
	types.ContentBullet:  0.1,
	types.ContentSection: 0.15,
	types.ContentSummary: 0.3,
}

// TemperatureForAttempt returns the sampling temperature for the given
// content type and zero-based attempt number, clamped to the type's
// floor/ceiling.
func TemperatureForAttempt(contentType types.ContentType, attempt int) float32 {
	base, ok := temperatureBase[contentType]
	if !ok {
		base = temperatureBase[types.ContentBullet]
	}
	floor, ok := temperatureFloor[contentType]
	if !ok {
		floor = temperatureFloor[types.ContentBullet]
	}

	if attempt < 0 {
		attempt = 0
	}
	temp := base - float32(attempt)*temperatureStep
	if temp < floor {
		temp = floor
	}
	if temp > base {
		temp = base
	}
	return temp
}
