package engine

import "github.com/jonathan/rewrite-engine/internal/llm"

// Default attempt and concurrency bounds.
const (
	// DefaultMaxRetries is the number of retry attempts after the first,
	// shared between validation failures and backend timeouts.
	DefaultMaxRetries = 2
	// DefaultMaxConcurrent bounds the parallel rewrite fan-out.
	DefaultMaxConcurrent = 4
)

// Config holds the engine's tunable settings.
type Config struct {
	// MaxRetries is the retry budget after the initial attempt.
	MaxRetries int
	// MaxConcurrent bounds the parallel rewrite task pool.
	MaxConcurrent int
	// BulletTier and SummaryTier select the model tier per content type.
	// Bullet rewrites need the most nuance.
	BulletTier  llm.ModelTier
	SummaryTier llm.ModelTier
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxRetries:    DefaultMaxRetries,
		MaxConcurrent: DefaultMaxConcurrent,
		BulletTier:    llm.TierAdvanced,
		SummaryTier:   llm.TierStandard,
	}
}

// withDefaults fills zero values with defaults.
func (c Config) withDefaults() Config {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.BulletTier == "" {
		c.BulletTier = llm.TierAdvanced
	}
	if c.SummaryTier == "" {
		c.SummaryTier = llm.TierStandard
	}
	return c
}
