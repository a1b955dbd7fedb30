package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/domain/repository"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() repository.MovementRepository {
	return NewMovementStore(logger.NewNop())
}

func movement(id, whale, mint string, usd float64, direction entity.MovementDirection, age time.Duration) *entity.WhaleMovement {
	return &entity.WhaleMovement{
		ID:           id,
		Timestamp:    time.Now().Add(-age).UnixMilli(),
		WhaleAddress: whale,
		Type:         entity.TransactionTypeSwap,
		TokenMint:    mint,
		Amount:       usd / 10,
		UsdValue:     usd,
		Direction:    direction,
	}
}

func TestRecordAndQuery(t *testing.T) {
	s := newStore()

	s.Record(movement("m1", "whaleA", "SOL", 50_000, entity.MovementDirectionIn, time.Hour))
	s.Record(movement("m2", "whaleB", "SOL", 20_000, entity.MovementDirectionOut, 30*time.Minute))
	s.Record(movement("m3", "whaleA", "USDC", 80_000, entity.MovementDirectionIn, time.Minute))

	t.Run("newest first across tokens", func(t *testing.T) {
		all := s.GetAllRecent(10)
		require.Len(t, all, 3)
		assert.Equal(t, "m3", all[0].ID)
		assert.Equal(t, "m1", all[2].ID)
	})

	t.Run("by token", func(t *testing.T) {
		sol := s.GetByToken("SOL", 10)
		require.Len(t, sol, 2)
		assert.Equal(t, "m2", sol[0].ID)

		assert.Empty(t, s.GetByToken("BONK", 10))
	})

	t.Run("by whale", func(t *testing.T) {
		byWhale := s.GetByWhale("whaleA", 10)
		require.Len(t, byWhale, 2)
		assert.Equal(t, "m3", byWhale[0].ID)
		assert.Equal(t, "m1", byWhale[1].ID)
	})

	t.Run("by value floor is inclusive", func(t *testing.T) {
		large := s.GetLarge(50_000, 10)
		require.Len(t, large, 2)
		assert.Equal(t, "m3", large[0].ID)
	})

	t.Run("limit is honored", func(t *testing.T) {
		assert.Len(t, s.GetAllRecent(2), 2)
	})

	t.Run("zero limit falls back to the default", func(t *testing.T) {
		assert.Len(t, s.GetAllRecent(0), 3)
	})
}

func TestGetByType(t *testing.T) {
	s := newStore()

	m := movement("m1", "w", "SOL", 15_000, entity.MovementDirectionOut, time.Minute)
	m.Type = entity.TransactionTypeStake
	s.Record(m)
	s.Record(movement("m2", "w", "SOL", 15_000, entity.MovementDirectionIn, time.Minute))

	stakes := s.GetByType(entity.TransactionTypeStake, 10)
	require.Len(t, stakes, 1)
	assert.Equal(t, "m1", stakes[0].ID)

	assert.Empty(t, s.GetByType(entity.TransactionTypeTransfer, 10))
}

func TestPruneByCount(t *testing.T) {
	s := newStore()

	for i := 0; i < MaxMovementsPerToken+5; i++ {
		s.Record(movement(fmt.Sprintf("m%d", i), "w", "SOL", 15_000, entity.MovementDirectionIn, time.Minute))
	}

	kept := s.GetByToken("SOL", MaxMovementsPerToken+5)
	require.Len(t, kept, MaxMovementsPerToken)

	// Oldest insertions fall off the tail, newest stays at the head
	assert.Equal(t, fmt.Sprintf("m%d", MaxMovementsPerToken+4), kept[0].ID)
	assert.Equal(t, "m5", kept[len(kept)-1].ID)
}

func TestPruneByAge(t *testing.T) {
	s := newStore()

	s.Record(movement("stale", "w", "SOL", 15_000, entity.MovementDirectionIn, MaxMovementAge+time.Hour))
	s.Record(movement("fresh", "w", "SOL", 15_000, entity.MovementDirectionIn, time.Minute))

	kept := s.GetByToken("SOL", 10)
	require.Len(t, kept, 1)
	assert.Equal(t, "fresh", kept[0].ID)
}

func TestPruneDropsEmptyTokenList(t *testing.T) {
	s := newStore()

	s.Record(movement("stale", "w", "OLD", 15_000, entity.MovementDirectionIn, MaxMovementAge+time.Hour))
	// Any later record triggers pruning of the expired token list
	s.Record(movement("fresh", "w", "SOL", 15_000, entity.MovementDirectionIn, time.Minute))

	assert.Empty(t, s.GetByToken("OLD", 10))
}

func TestGetStats(t *testing.T) {
	s := newStore()

	t.Run("empty store yields zero stats", func(t *testing.T) {
		stats := s.GetStats("SOL", 24*time.Hour)
		assert.Equal(t, 0, stats.TotalMovements)
		assert.Equal(t, 0.0, stats.AverageMovementUsd)
		assert.Nil(t, stats.LargestMovement)
	})

	s.Record(movement("m1", "whaleA", "SOL", 30_000, entity.MovementDirectionIn, time.Hour))
	s.Record(movement("m2", "whaleB", "SOL", 10_000, entity.MovementDirectionOut, 30*time.Minute))

	transfer := movement("m3", "whaleA", "SOL", 20_000, entity.MovementDirectionIn, time.Minute)
	transfer.Type = entity.TransactionTypeTransfer
	s.Record(transfer)

	// Outside the queried window
	s.Record(movement("m4", "whaleC", "SOL", 99_000, entity.MovementDirectionIn, 48*time.Hour))

	stats := s.GetStats("SOL", 24*time.Hour)
	assert.Equal(t, 3, stats.TotalMovements)
	assert.InDelta(t, 60_000, stats.TotalVolumeUsd, 1e-9)
	assert.Equal(t, 2, stats.InflowCount)
	assert.Equal(t, 1, stats.OutflowCount)
	assert.InDelta(t, 50_000, stats.InflowUsd, 1e-9)
	assert.InDelta(t, 10_000, stats.OutflowUsd, 1e-9)
	assert.InDelta(t, 20_000, stats.AverageMovementUsd, 1e-9)
	assert.Equal(t, 2, stats.SwapCount)
	assert.Equal(t, 1, stats.TransferCount)

	require.NotNil(t, stats.LargestMovement)
	assert.Equal(t, "m1", stats.LargestMovement.ID)
}

func TestGetNetFlow(t *testing.T) {
	s := newStore()

	t.Run("empty store is neutral", func(t *testing.T) {
		flow := s.GetNetFlow("SOL", 24*time.Hour)
		assert.Equal(t, entity.SentimentNeutral, flow.Sentiment)
		assert.Equal(t, 0.0, flow.NetFlowUsd)
	})

	s.Record(movement("m1", "w", "SOL", 20_000, entity.MovementDirectionIn, time.Hour))
	s.Record(movement("m2", "w", "SOL", 5_000, entity.MovementDirectionOut, time.Minute))

	t.Run("net inflow above the band is bullish", func(t *testing.T) {
		flow := s.GetNetFlow("SOL", 24*time.Hour)
		assert.InDelta(t, 15_000, flow.NetFlowUsd, 1e-9)
		assert.InDelta(t, 1_500, flow.NetAmount, 1e-9)
		assert.Equal(t, entity.SentimentBullish, flow.Sentiment)
	})

	t.Run("heavy outflow flips to bearish", func(t *testing.T) {
		s.Record(movement("m3", "w", "SOL", 40_000, entity.MovementDirectionOut, time.Minute))
		assert.Equal(t, entity.SentimentBearish, s.GetNetFlow("SOL", 24*time.Hour).Sentiment)
	})

	t.Run("small imbalance stays neutral", func(t *testing.T) {
		quiet := newStore()
		quiet.Record(movement("m1", "w", "SOL", 12_000, entity.MovementDirectionIn, time.Hour))
		quiet.Record(movement("m2", "w", "SOL", 4_000, entity.MovementDirectionOut, time.Minute))
		assert.Equal(t, entity.SentimentNeutral, quiet.GetNetFlow("SOL", 24*time.Hour).Sentiment)
	})
}

func TestClear(t *testing.T) {
	s := newStore()
	s.Record(movement("m1", "w", "SOL", 15_000, entity.MovementDirectionIn, time.Minute))

	s.Clear()

	assert.Empty(t, s.GetAllRecent(10))
	assert.Empty(t, s.GetByToken("SOL", 10))
}
