package entity

import (
	"time"
)

// WhaleConfig holds the thresholds driving whale qualification, movement
// significance and pattern detection
type WhaleConfig struct {
	MinWhaleHoldingsUsd float64
	MinMovementUsd      float64
	PatternWindow       time.Duration
	MinPatternTxCount   int
}

// DefaultWhaleConfig returns the standard threshold set
func DefaultWhaleConfig() WhaleConfig {
	return WhaleConfig{
		MinWhaleHoldingsUsd: 100_000,
		MinMovementUsd:      10_000,
		PatternWindow:       24 * time.Hour,
		MinPatternTxCount:   3,
	}
}

// IsWhale reports whether a holdings value qualifies a wallet as a whale.
// The threshold is inclusive.
func (c WhaleConfig) IsWhale(usdValue float64) bool {
	return usdValue >= c.MinWhaleHoldingsUsd
}

// IsSignificantMovement reports whether a movement value crosses the
// recording threshold. The threshold is inclusive.
func (c WhaleConfig) IsSignificantMovement(usdValue float64) bool {
	return usdValue >= c.MinMovementUsd
}
