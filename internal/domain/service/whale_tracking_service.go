package service

import (
	"context"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
)

// WhaleTrackingService defines the interface for whale tracking operations
type WhaleTrackingService interface {
	// DiscoverWhales scans the largest holders of a token and registers
	// every wallet whose holdings cross the whale threshold
	DiscoverWhales(ctx context.Context, tokenMint string, tokenPrice float64) ([]*entity.WhaleProfile, error)

	// AnalyzeWhale fetches a wallet's recent transactions, classifies its
	// behavior and detects accumulation/distribution patterns
	AnalyzeWhale(ctx context.Context, wallet, tokenMint string, tokenPrice float64) (*entity.WhaleAnalysis, error)

	// ProcessTransactions records significant movements found in a batch of
	// parsed transactions, preserving input order
	ProcessTransactions(ctx context.Context, transactions []*entity.ParsedTransaction, whale, tokenMint string, tokenPrice float64) ([]*entity.WhaleMovement, error)

	// GetTrackedWhales retrieves all registered whales for a token
	GetTrackedWhales(ctx context.Context, tokenMint string) ([]*entity.WhaleProfile, error)

	// GetWhaleProfile retrieves a single whale profile, nil if not registered
	GetWhaleProfile(ctx context.Context, tokenMint, address string) (*entity.WhaleProfile, error)

	// GetWhaleActivitySummary aggregates registered whales by behavior
	GetWhaleActivitySummary(ctx context.Context, tokenMint string) (*entity.WhaleActivitySummary, error)
}
