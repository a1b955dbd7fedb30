package storage

import (
	"sync"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/domain/repository"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// Retention limits for recorded movements
const (
	MaxMovementsPerToken = 1000
	MaxMovementAge       = 7 * 24 * time.Hour

	// The global list spans all tokens, so it gets a wider cap
	globalCapMultiplier = 10

	// DefaultQueryLimit caps query results when the caller passes no limit
	DefaultQueryLimit = 50
)

// MovementStore is a bounded, age-pruned in-memory implementation of
// repository.MovementRepository. Lists are kept newest-insertion-first.
type MovementStore struct {
	mu          sync.RWMutex
	global      []*entity.WhaleMovement
	byToken     map[string][]*entity.WhaleMovement
	maxPerToken int
	maxAge      time.Duration
	logger      *logger.Logger
}

// NewMovementStore creates a movement store with the default retention limits
func NewMovementStore(logger *logger.Logger) repository.MovementRepository {
	return &MovementStore{
		byToken:     make(map[string][]*entity.WhaleMovement),
		maxPerToken: MaxMovementsPerToken,
		maxAge:      MaxMovementAge,
		logger:      logger.WithComponent("movement-store"),
	}
}

// Record inserts a movement at the head of both collections and prunes
func (s *MovementStore) Record(movement *entity.WhaleMovement) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.global = append([]*entity.WhaleMovement{movement}, s.global...)
	s.byToken[movement.TokenMint] = append([]*entity.WhaleMovement{movement}, s.byToken[movement.TokenMint]...)
	s.prune()

	s.logger.Debug("Recorded whale movement",
		zap.String("id", movement.ID),
		zap.String("whale", movement.WhaleAddress),
		zap.String("mint", movement.TokenMint),
		zap.Float64("usd_value", movement.UsdValue))
}

// prune trims both collections from the tail by count cap and age.
// Caller must hold the write lock.
func (s *MovementStore) prune() {
	nowMs := time.Now().UnixMilli()
	maxAgeMs := s.maxAge.Milliseconds()

	globalCap := s.maxPerToken * globalCapMultiplier
	for len(s.global) > 0 {
		if len(s.global) > globalCap || nowMs-s.global[len(s.global)-1].Timestamp > maxAgeMs {
			s.global = s.global[:len(s.global)-1]
			continue
		}
		break
	}

	for mint, list := range s.byToken {
		for len(list) > 0 {
			if len(list) > s.maxPerToken || nowMs-list[len(list)-1].Timestamp > maxAgeMs {
				list = list[:len(list)-1]
				continue
			}
			break
		}
		if len(list) == 0 {
			delete(s.byToken, mint)
		} else {
			s.byToken[mint] = list
		}
	}
}

// GetByToken returns the most recent movements for a token
func (s *MovementStore) GetByToken(tokenMint string, limit int) []*entity.WhaleMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return capped(s.byToken[tokenMint], limit)
}

// GetByWhale returns the most recent movements by a wallet across all tokens
func (s *MovementStore) GetByWhale(address string, limit int) []*entity.WhaleMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*entity.WhaleMovement
	for _, m := range s.global {
		if m.WhaleAddress == address {
			matched = append(matched, m)
			if len(matched) == normalizeLimit(limit) {
				break
			}
		}
	}
	return matched
}

// GetAllRecent returns the most recent movements across all tokens
func (s *MovementStore) GetAllRecent(limit int) []*entity.WhaleMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return capped(s.global, limit)
}

// GetByType returns recent movements of the given transaction type
func (s *MovementStore) GetByType(txType entity.TransactionType, limit int) []*entity.WhaleMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*entity.WhaleMovement
	for _, m := range s.global {
		if m.Type == txType {
			matched = append(matched, m)
			if len(matched) == normalizeLimit(limit) {
				break
			}
		}
	}
	return matched
}

// GetLarge returns recent movements at or above the USD value floor
func (s *MovementStore) GetLarge(minUsdValue float64, limit int) []*entity.WhaleMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*entity.WhaleMovement
	for _, m := range s.global {
		if m.UsdValue >= minUsdValue {
			matched = append(matched, m)
			if len(matched) == normalizeLimit(limit) {
				break
			}
		}
	}
	return matched
}

// GetStats aggregates a token's movements within the trailing window
func (s *MovementStore) GetStats(tokenMint string, window time.Duration) *entity.MovementStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &entity.MovementStats{TokenMint: tokenMint}
	cutoff := time.Now().UnixMilli() - window.Milliseconds()

	for _, m := range s.byToken[tokenMint] {
		if m.Timestamp < cutoff {
			continue
		}

		stats.TotalMovements++
		stats.TotalVolumeUsd += m.UsdValue

		if m.Direction == entity.MovementDirectionIn {
			stats.InflowCount++
			stats.InflowUsd += m.UsdValue
		} else {
			stats.OutflowCount++
			stats.OutflowUsd += m.UsdValue
		}

		if stats.LargestMovement == nil || m.UsdValue > stats.LargestMovement.UsdValue {
			stats.LargestMovement = m
		}

		switch m.Type {
		case entity.TransactionTypeSwap:
			stats.SwapCount++
		case entity.TransactionTypeTransfer:
			stats.TransferCount++
		case entity.TransactionTypeStake, entity.TransactionTypeUnstake:
			stats.StakeCount++
		}
	}

	if stats.TotalMovements > 0 {
		stats.AverageMovementUsd = stats.TotalVolumeUsd / float64(stats.TotalMovements)
	}
	return stats
}

// GetNetFlow computes the signed flow for a token within the trailing window
func (s *MovementStore) GetNetFlow(tokenMint string, window time.Duration) *entity.NetFlow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flow := &entity.NetFlow{TokenMint: tokenMint}
	cutoff := time.Now().UnixMilli() - window.Milliseconds()

	for _, m := range s.byToken[tokenMint] {
		if m.Timestamp < cutoff {
			continue
		}
		if m.Direction == entity.MovementDirectionIn {
			flow.NetFlowUsd += m.UsdValue
			flow.NetAmount += m.Amount
		} else {
			flow.NetFlowUsd -= m.UsdValue
			flow.NetAmount -= m.Amount
		}
	}

	switch {
	case flow.NetFlowUsd > 10_000:
		flow.Sentiment = entity.SentimentBullish
	case flow.NetFlowUsd < -10_000:
		flow.Sentiment = entity.SentimentBearish
	default:
		flow.Sentiment = entity.SentimentNeutral
	}
	return flow
}

// Clear empties the store
func (s *MovementStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.global = nil
	s.byToken = make(map[string][]*entity.WhaleMovement)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	return limit
}

// capped copies up to limit entries from the head of a list
func capped(list []*entity.WhaleMovement, limit int) []*entity.WhaleMovement {
	n := normalizeLimit(limit)
	if n > len(list) {
		n = len(list)
	}
	out := make([]*entity.WhaleMovement, n)
	copy(out, list[:n])
	return out
}
