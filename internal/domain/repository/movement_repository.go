package repository

import (
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
)

// MovementRepository defines the interface for whale movement storage.
// Implementations are in-memory and process-lifetime only; all methods are
// safe for concurrent use.
type MovementRepository interface {
	// Record inserts a movement at the head of the global and per-token
	// collections, then prunes by count and age
	Record(movement *entity.WhaleMovement)

	// GetByToken retrieves the most recent movements for a token
	GetByToken(tokenMint string, limit int) []*entity.WhaleMovement

	// GetByWhale retrieves the most recent movements by a wallet across tokens
	GetByWhale(address string, limit int) []*entity.WhaleMovement

	// GetAllRecent retrieves the most recent movements across all tokens
	GetAllRecent(limit int) []*entity.WhaleMovement

	// GetByType retrieves recent movements of a given transaction type
	GetByType(txType entity.TransactionType, limit int) []*entity.WhaleMovement

	// GetLarge retrieves recent movements at or above a USD value floor
	GetLarge(minUsdValue float64, limit int) []*entity.WhaleMovement

	// GetStats aggregates a token's movements over the trailing window
	GetStats(tokenMint string, window time.Duration) *entity.MovementStats

	// GetNetFlow computes the signed USD and token flow over the window
	GetNetFlow(tokenMint string, window time.Duration) *entity.NetFlow

	// Clear empties the store
	Clear()
}
