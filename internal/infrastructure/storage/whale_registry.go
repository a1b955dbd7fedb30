package storage

import (
	"sync"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/domain/repository"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// WhaleRegistry is an in-memory implementation of repository.WhaleRepository.
// Profiles are keyed by token mint, then wallet address. It also holds the
// per-wallet parsed transaction cache used by behavior analysis.
type WhaleRegistry struct {
	mu       sync.RWMutex
	profiles map[string]map[string]*entity.WhaleProfile
	txCache  map[string][]*entity.ParsedTransaction
	logger   *logger.Logger
}

// NewWhaleRegistry creates an empty whale registry
func NewWhaleRegistry(logger *logger.Logger) repository.WhaleRepository {
	return &WhaleRegistry{
		profiles: make(map[string]map[string]*entity.WhaleProfile),
		txCache:  make(map[string][]*entity.ParsedTransaction),
		logger:   logger.WithComponent("whale-registry"),
	}
}

// Register inserts or replaces a whale profile
func (r *WhaleRegistry) Register(profile *entity.WhaleProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byAddress, exists := r.profiles[profile.TokenMint]
	if !exists {
		byAddress = make(map[string]*entity.WhaleProfile)
		r.profiles[profile.TokenMint] = byAddress
	}
	byAddress[profile.Address] = profile

	r.logger.Debug("Registered whale",
		zap.String("address", profile.Address),
		zap.String("mint", profile.TokenMint),
		zap.Float64("usd_value", profile.UsdValue))
}

// GetByToken returns all registered profiles for a token in map iteration order
func (r *WhaleRegistry) GetByToken(tokenMint string) []*entity.WhaleProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byAddress := r.profiles[tokenMint]
	whales := make([]*entity.WhaleProfile, 0, len(byAddress))
	for _, p := range byAddress {
		whales = append(whales, p)
	}
	return whales
}

// Get returns a single profile; ok is false when not registered
func (r *WhaleRegistry) Get(tokenMint, address string) (*entity.WhaleProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[tokenMint][address]
	return p, ok
}

// Update merges the partial update into an existing profile. Missing entries
// are ignored; no profile is ever created here.
func (r *WhaleRegistry) Update(tokenMint, address string, update entity.WhaleProfileUpdate) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[tokenMint][address]
	if !ok {
		return false
	}

	if update.Holdings != nil {
		p.Holdings = *update.Holdings
	}
	if update.UsdValue != nil {
		p.UsdValue = *update.UsdValue
	}
	if update.Behavior != "" {
		p.Behavior = update.Behavior
	}
	if update.RecentTxCount != nil {
		p.RecentTxCount = *update.RecentTxCount
	}
	p.LastActivity = time.Now()
	return true
}

// GetActivitySummary aggregates registered whales for a token by behavior
func (r *WhaleRegistry) GetActivitySummary(tokenMint string) *entity.WhaleActivitySummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := &entity.WhaleActivitySummary{
		TokenMint:  tokenMint,
		ByBehavior: make(map[entity.WhaleBehavior]int),
	}
	for _, p := range r.profiles[tokenMint] {
		summary.TotalWhales++
		summary.ByBehavior[p.Behavior]++
		summary.TotalHoldingsUsd += p.UsdValue
	}
	return summary
}

// CacheTransactions replaces the cached parsed history for a wallet
func (r *WhaleRegistry) CacheTransactions(wallet string, transactions []*entity.ParsedTransaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txCache[wallet] = transactions
}

// GetCachedTransactions returns the cached parsed history for a wallet
func (r *WhaleRegistry) GetCachedTransactions(wallet string) []*entity.ParsedTransaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.txCache[wallet]
}

// Clear empties the registry and the transaction cache
func (r *WhaleRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = make(map[string]map[string]*entity.WhaleProfile)
	r.txCache = make(map[string][]*entity.ParsedTransaction)
}
