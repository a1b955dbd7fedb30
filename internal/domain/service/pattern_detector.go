package service

import (
	"math"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// Behavior classification bands on the buy ratio
const (
	accumulationRatio = 0.7
	distributionRatio = 0.3
)

// PatternDetectorService detects accumulation and distribution behavior from
// a wallet's parsed transaction history
type PatternDetectorService struct {
	logger *logger.Logger
}

// NewPatternDetectorService creates a new pattern detector
func NewPatternDetectorService(logger *logger.Logger) *PatternDetectorService {
	return &PatternDetectorService{
		logger: logger.WithComponent("pattern-detector"),
	}
}

// AnalyzeBehavior classifies a wallet's behavior toward a token from its
// transaction history within the trailing pattern window.
//
// Swaps count as a buy when tokenOut matches the mint and a sell when
// tokenIn matches; a swap matching both counts as both. Transfers matching
// the mint count as buys regardless of direction.
func (s *PatternDetectorService) AnalyzeBehavior(wallet, tokenMint string, transactions []*entity.ParsedTransaction, cfg entity.WhaleConfig) entity.WhaleBehavior {
	windowed := filterWindow(transactions, cfg.PatternWindow)
	if len(windowed) < cfg.MinPatternTxCount {
		return entity.BehaviorHolding
	}

	buys, sells := 0, 0
	for _, tx := range windowed {
		switch tx.Type {
		case entity.TransactionTypeSwap:
			if tx.TokenOut != nil && tx.TokenOut.Mint == tokenMint {
				buys++
			}
			if tx.TokenIn != nil && tx.TokenIn.Mint == tokenMint {
				sells++
			}
		case entity.TransactionTypeTransfer:
			if tx.Transfer != nil && tx.Transfer.Mint == tokenMint {
				buys++
			}
		}
	}

	total := buys + sells
	if total < cfg.MinPatternTxCount {
		return entity.BehaviorHolding
	}

	buyRatio := float64(buys) / float64(total)
	s.logger.Debug("Analyzed wallet behavior",
		zap.String("wallet", wallet),
		zap.String("mint", tokenMint),
		zap.Int("buys", buys),
		zap.Int("sells", sells))

	switch {
	case buyRatio >= accumulationRatio:
		return entity.BehaviorAccumulating
	case buyRatio <= distributionRatio:
		return entity.BehaviorDistributing
	default:
		return entity.BehaviorHolding
	}
}

// DetectAccumulationPattern looks for repeated buys of a token within the
// pattern window. Returns nil when no qualifying pattern exists.
func (s *PatternDetectorService) DetectAccumulationPattern(wallet, tokenMint string, transactions []*entity.ParsedTransaction, tokenPrice float64, cfg entity.WhaleConfig) *entity.Pattern {
	return s.detectPattern(wallet, tokenMint, transactions, tokenPrice, cfg, entity.PatternAccumulation)
}

// DetectDistributionPattern looks for repeated sells of a token within the
// pattern window. Returns nil when no qualifying pattern exists.
func (s *PatternDetectorService) DetectDistributionPattern(wallet, tokenMint string, transactions []*entity.ParsedTransaction, tokenPrice float64, cfg entity.WhaleConfig) *entity.Pattern {
	return s.detectPattern(wallet, tokenMint, transactions, tokenPrice, cfg, entity.PatternDistribution)
}

// detectPattern gathers qualifying swap legs and scores the consistency of
// their sizes. The volume gate is combined (min movement x min count), not
// per transaction.
func (s *PatternDetectorService) detectPattern(wallet, tokenMint string, transactions []*entity.ParsedTransaction, tokenPrice float64, cfg entity.WhaleConfig, patternType entity.PatternType) *entity.Pattern {
	windowed := filterWindow(transactions, cfg.PatternWindow)

	var amounts []float64
	var first, last int64
	for _, tx := range windowed {
		if tx.Type != entity.TransactionTypeSwap {
			continue
		}

		var leg *entity.TokenAmount
		if patternType == entity.PatternAccumulation {
			leg = tx.TokenOut
		} else {
			leg = tx.TokenIn
		}
		if leg == nil || leg.Mint != tokenMint {
			continue
		}

		amounts = append(amounts, leg.UIAmount)
		if first == 0 || tx.Timestamp < first {
			first = tx.Timestamp
		}
		if tx.Timestamp > last {
			last = tx.Timestamp
		}
	}

	if len(amounts) < cfg.MinPatternTxCount {
		return nil
	}

	totalAmount := 0.0
	for _, a := range amounts {
		totalAmount += a
	}
	totalUsd := totalAmount * tokenPrice
	if totalUsd < cfg.MinMovementUsd*float64(cfg.MinPatternTxCount) {
		return nil
	}

	return &entity.Pattern{
		WhaleAddress:     wallet,
		TokenMint:        tokenMint,
		Type:             patternType,
		TransactionCount: len(amounts),
		TotalAmount:      totalAmount,
		TotalUsdValue:    totalUsd,
		WindowStart:      first * 1000,
		WindowEnd:        last * 1000,
		Confidence:       sizeConsistency(amounts),
	}
}

// sizeConsistency is 1 minus the population coefficient of variation of the
// trade sizes, clamped to [0, 1]. A zero mean yields 0 rather than NaN.
func sizeConsistency(amounts []float64) float64 {
	mean := 0.0
	for _, a := range amounts {
		mean += a
	}
	mean /= float64(len(amounts))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, a := range amounts {
		d := a - mean
		variance += d * d
	}
	variance /= float64(len(amounts))

	confidence := 1 - math.Sqrt(variance)/mean
	if math.IsNaN(confidence) || confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// filterWindow keeps transactions whose timestamp falls within the trailing
// window ending now
func filterWindow(transactions []*entity.ParsedTransaction, window time.Duration) []*entity.ParsedTransaction {
	cutoff := time.Now().Add(-window).Unix()
	filtered := make([]*entity.ParsedTransaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Timestamp >= cutoff {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}
