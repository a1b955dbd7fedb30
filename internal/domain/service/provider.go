package service

import (
	"context"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
)

// BlockchainDataService defines the interface for upstream blockchain data
type BlockchainDataService interface {
	// GetLargestTokenHolders retrieves the largest holders of a token mint
	GetLargestTokenHolders(ctx context.Context, mint string, limit int) ([]*entity.TokenHolder, error)

	// GetRecentTransactions retrieves enhanced transactions for an address,
	// newest first. The feed contains only confirmed transactions.
	GetRecentTransactions(ctx context.Context, address string, limit int) ([]*entity.RawTransaction, error)

	// GetTokenAccountsByOwner retrieves token accounts held by an owner,
	// optionally filtered to a single mint (empty mint means all)
	GetTokenAccountsByOwner(ctx context.Context, owner, mint string) ([]*entity.TokenHolder, error)
}

// PriceService resolves a token mint to a USD price. Unknown mints price at 0.
type PriceService interface {
	GetTokenPrice(mint string) float64
}

// MovementPublisher publishes recorded whale movements to downstream consumers
type MovementPublisher interface {
	PublishMovement(ctx context.Context, movement *entity.WhaleMovement) error
}
