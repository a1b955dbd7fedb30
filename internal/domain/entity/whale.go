package entity

import (
	"time"
)

// WhaleBehavior is the behavioral classification of a whale wallet
type WhaleBehavior string

const (
	BehaviorUnknown      WhaleBehavior = "unknown"
	BehaviorAccumulating WhaleBehavior = "accumulating"
	BehaviorDistributing WhaleBehavior = "distributing"
	BehaviorHolding      WhaleBehavior = "holding"
)

// WhaleProfile represents a wallet that qualified as a whale for a token
type WhaleProfile struct {
	Address       string        `json:"address"`
	TokenMint     string        `json:"tokenMint"`
	Holdings      float64       `json:"holdings"`
	UsdValue      float64       `json:"usdValue"`
	FirstSeen     time.Time     `json:"firstSeen"`
	LastActivity  time.Time     `json:"lastActivity"`
	Behavior      WhaleBehavior `json:"behavior"`
	RecentTxCount int           `json:"recentTxCount"`
}

// WhaleProfileUpdate is a partial update merged into an existing profile.
// Nil fields are left untouched; LastActivity is always refreshed.
type WhaleProfileUpdate struct {
	Holdings      *float64
	UsdValue      *float64
	Behavior      WhaleBehavior
	RecentTxCount *int
}

// WhaleActivitySummary aggregates the registered whales for a token
type WhaleActivitySummary struct {
	TokenMint        string                `json:"tokenMint"`
	TotalWhales      int                   `json:"totalWhales"`
	ByBehavior       map[WhaleBehavior]int `json:"byBehavior"`
	TotalHoldingsUsd float64               `json:"totalHoldingsUsd"`
}

// WhaleAnalysis is the result of a full behavioral analysis run
type WhaleAnalysis struct {
	WhaleAddress string        `json:"whaleAddress"`
	TokenMint    string        `json:"tokenMint"`
	Behavior     WhaleBehavior `json:"behavior"`
	Patterns     []*Pattern    `json:"patterns"`
}
