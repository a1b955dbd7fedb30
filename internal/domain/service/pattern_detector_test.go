package service

import (
	"testing"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMint = "TokenX"

func testConfig() entity.WhaleConfig {
	return entity.WhaleConfig{
		MinWhaleHoldingsUsd: 100_000,
		MinMovementUsd:      100,
		PatternWindow:       24 * time.Hour,
		MinPatternTxCount:   3,
	}
}

// buySwap builds a parsed swap acquiring the tracked token
func buySwap(amount float64, age time.Duration) *entity.ParsedTransaction {
	return &entity.ParsedTransaction{
		Signature: "sig",
		Timestamp: time.Now().Add(-age).Unix(),
		Type:      entity.TransactionTypeSwap,
		Success:   true,
		TokenIn:   &entity.TokenAmount{Mint: "USDC", Amount: amount * 10, UIAmount: amount * 10},
		TokenOut:  &entity.TokenAmount{Mint: testMint, Amount: amount, UIAmount: amount},
	}
}

// sellSwap builds a parsed swap disposing of the tracked token
func sellSwap(amount float64, age time.Duration) *entity.ParsedTransaction {
	return &entity.ParsedTransaction{
		Signature: "sig",
		Timestamp: time.Now().Add(-age).Unix(),
		Type:      entity.TransactionTypeSwap,
		Success:   true,
		TokenIn:   &entity.TokenAmount{Mint: testMint, Amount: amount, UIAmount: amount},
		TokenOut:  &entity.TokenAmount{Mint: "USDC", Amount: amount * 10, UIAmount: amount * 10},
	}
}

func TestAnalyzeBehavior(t *testing.T) {
	d := NewPatternDetectorService(logger.NewNop())
	cfg := testConfig()

	t.Run("too few transactions is holding", func(t *testing.T) {
		txs := []*entity.ParsedTransaction{buySwap(100, time.Minute)}
		assert.Equal(t, entity.BehaviorHolding, d.AnalyzeBehavior("w", testMint, txs, cfg))
	})

	t.Run("all buys is accumulating", func(t *testing.T) {
		txs := []*entity.ParsedTransaction{
			buySwap(100, time.Minute),
			buySwap(105, 2*time.Minute),
			buySwap(95, 3*time.Minute),
		}
		assert.Equal(t, entity.BehaviorAccumulating, d.AnalyzeBehavior("w", testMint, txs, cfg))
	})

	t.Run("all sells is distributing", func(t *testing.T) {
		txs := []*entity.ParsedTransaction{
			sellSwap(100, time.Minute),
			sellSwap(105, 2*time.Minute),
			sellSwap(95, 3*time.Minute),
		}
		assert.Equal(t, entity.BehaviorDistributing, d.AnalyzeBehavior("w", testMint, txs, cfg))
	})

	t.Run("mixed activity is holding", func(t *testing.T) {
		txs := []*entity.ParsedTransaction{
			buySwap(100, time.Minute),
			buySwap(100, 2*time.Minute),
			sellSwap(100, 3*time.Minute),
			sellSwap(100, 4*time.Minute),
		}
		assert.Equal(t, entity.BehaviorHolding, d.AnalyzeBehavior("w", testMint, txs, cfg))
	})

	t.Run("transfers of the mint count as buys", func(t *testing.T) {
		txs := []*entity.ParsedTransaction{
			{
				Timestamp: time.Now().Unix(),
				Type:      entity.TransactionTypeTransfer,
				Transfer:  &entity.TokenAmount{Mint: testMint, UIAmount: 50},
			},
			buySwap(100, time.Minute),
			buySwap(100, 2*time.Minute),
		}
		assert.Equal(t, entity.BehaviorAccumulating, d.AnalyzeBehavior("w", testMint, txs, cfg))
	})

	t.Run("old transactions fall out of the window", func(t *testing.T) {
		txs := []*entity.ParsedTransaction{
			buySwap(100, 48*time.Hour),
			buySwap(100, 49*time.Hour),
			buySwap(100, 50*time.Hour),
		}
		assert.Equal(t, entity.BehaviorHolding, d.AnalyzeBehavior("w", testMint, txs, cfg))
	})
}

func TestDetectAccumulationPattern(t *testing.T) {
	d := NewPatternDetectorService(logger.NewNop())
	cfg := testConfig()

	t.Run("consistent buys yield high confidence", func(t *testing.T) {
		txs := []*entity.ParsedTransaction{
			buySwap(100, time.Minute),
			buySwap(105, 30*time.Minute),
			buySwap(95, time.Hour),
		}

		p := d.DetectAccumulationPattern("w", testMint, txs, 10, cfg)
		require.NotNil(t, p)
		assert.Equal(t, entity.PatternAccumulation, p.Type)
		assert.Equal(t, 3, p.TransactionCount)
		assert.InDelta(t, 300, p.TotalAmount, 1e-9)
		assert.InDelta(t, 3000, p.TotalUsdValue, 1e-9)
		assert.Greater(t, p.Confidence, 0.9)
		assert.LessOrEqual(t, p.Confidence, 1.0)
		assert.Less(t, p.WindowStart, p.WindowEnd)
	})

	t.Run("an outlier buy collapses confidence to zero", func(t *testing.T) {
		txs := []*entity.ParsedTransaction{
			buySwap(100, time.Minute),
			buySwap(105, 30*time.Minute),
			buySwap(10_000, time.Hour),
		}

		p := d.DetectAccumulationPattern("w", testMint, txs, 10, cfg)
		require.NotNil(t, p)
		assert.Equal(t, 0.0, p.Confidence)
	})

	t.Run("too few qualifying buys returns nil even at huge value", func(t *testing.T) {
		txs := []*entity.ParsedTransaction{
			buySwap(1_000_000, time.Minute),
			buySwap(1_000_000, time.Hour),
		}
		assert.Nil(t, d.DetectAccumulationPattern("w", testMint, txs, 10, cfg))
	})

	t.Run("combined volume below gate returns nil", func(t *testing.T) {
		highBar := cfg
		highBar.MinMovementUsd = 10_000

		txs := []*entity.ParsedTransaction{
			buySwap(100, time.Minute),
			buySwap(105, 30*time.Minute),
			buySwap(95, time.Hour),
		}
		assert.Nil(t, d.DetectAccumulationPattern("w", testMint, txs, 10, highBar))
	})

	t.Run("sells do not qualify for accumulation", func(t *testing.T) {
		txs := []*entity.ParsedTransaction{
			sellSwap(100, time.Minute),
			sellSwap(105, 30*time.Minute),
			sellSwap(95, time.Hour),
		}
		assert.Nil(t, d.DetectAccumulationPattern("w", testMint, txs, 10, cfg))
	})

	t.Run("zero-sized trades yield zero confidence not NaN", func(t *testing.T) {
		noGate := cfg
		noGate.MinMovementUsd = 0

		txs := []*entity.ParsedTransaction{
			buySwap(0, time.Minute),
			buySwap(0, 30*time.Minute),
			buySwap(0, time.Hour),
		}
		p := d.DetectAccumulationPattern("w", testMint, txs, 10, noGate)
		require.NotNil(t, p)
		assert.Equal(t, 0.0, p.Confidence)
	})
}

func TestDetectDistributionPattern(t *testing.T) {
	d := NewPatternDetectorService(logger.NewNop())
	cfg := testConfig()

	txs := []*entity.ParsedTransaction{
		sellSwap(200, time.Minute),
		sellSwap(210, 30*time.Minute),
		sellSwap(190, time.Hour),
	}

	p := d.DetectDistributionPattern("w", testMint, txs, 10, cfg)
	require.NotNil(t, p)
	assert.Equal(t, entity.PatternDistribution, p.Type)
	assert.Equal(t, 3, p.TransactionCount)
	assert.Greater(t, p.Confidence, 0.9)

	// The same history holds no accumulation pattern
	assert.Nil(t, d.DetectAccumulationPattern("w", testMint, txs, 10, cfg))
}
