package repository

import (
	"github.com/caiovicentino/whalescope/internal/domain/entity"
)

// WhaleRepository defines the interface for whale profile storage, keyed by
// (tokenMint, walletAddress). Implementations are in-memory and safe for
// concurrent use.
type WhaleRepository interface {
	// Register inserts or replaces a whale profile
	Register(profile *entity.WhaleProfile)

	// GetByToken retrieves all registered profiles for a token (unordered)
	GetByToken(tokenMint string) []*entity.WhaleProfile

	// Get retrieves a single profile; ok is false when not registered
	Get(tokenMint, address string) (*entity.WhaleProfile, bool)

	// Update merges a partial update into an existing profile and refreshes
	// its last activity. No-op when the profile is not registered; never
	// creates entries. Returns whether a profile was updated.
	Update(tokenMint, address string, update entity.WhaleProfileUpdate) bool

	// GetActivitySummary aggregates registered whales by behavior
	GetActivitySummary(tokenMint string) *entity.WhaleActivitySummary

	// CacheTransactions stores a wallet's parsed history, replacing any
	// prior cache for that wallet
	CacheTransactions(wallet string, transactions []*entity.ParsedTransaction)

	// GetCachedTransactions retrieves a wallet's cached parsed history
	GetCachedTransactions(wallet string) []*entity.ParsedTransaction

	// Clear empties the registry and the transaction cache
	Clear()
}
