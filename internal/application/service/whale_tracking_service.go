package service

import (
	"context"
	"fmt"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/domain/repository"
	domain_service "github.com/caiovicentino/whalescope/internal/domain/service"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// Provider fetch limits for discovery and analysis
const (
	discoveryHolderLimit = 100
	analysisTxLimit      = 50
)

// WhaleTrackingApplicationService implements WhaleTrackingService
type WhaleTrackingApplicationService struct {
	provider   domain_service.BlockchainDataService
	classifier *domain_service.TransactionClassifierService
	detector   *domain_service.PatternDetectorService
	movements  repository.MovementRepository
	whales     repository.WhaleRepository
	publisher  domain_service.MovementPublisher
	cfg        entity.WhaleConfig
	logger     *logger.Logger
}

// NewWhaleTrackingApplicationService creates a new whale tracking service
func NewWhaleTrackingApplicationService(
	provider domain_service.BlockchainDataService,
	classifier *domain_service.TransactionClassifierService,
	detector *domain_service.PatternDetectorService,
	movements repository.MovementRepository,
	whales repository.WhaleRepository,
	publisher domain_service.MovementPublisher,
	cfg entity.WhaleConfig,
	logger *logger.Logger,
) domain_service.WhaleTrackingService {
	return &WhaleTrackingApplicationService{
		provider:   provider,
		classifier: classifier,
		detector:   detector,
		movements:  movements,
		whales:     whales,
		publisher:  publisher,
		cfg:        cfg,
		logger:     logger.WithComponent("whale-tracking-service"),
	}
}

// DiscoverWhales scans the largest holders of a token and registers every
// wallet crossing the whale threshold. Results keep provider return order.
func (s *WhaleTrackingApplicationService) DiscoverWhales(ctx context.Context, tokenMint string, tokenPrice float64) ([]*entity.WhaleProfile, error) {
	holders, err := s.provider.GetLargestTokenHolders(ctx, tokenMint, discoveryHolderLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token holders: %w", err)
	}

	now := time.Now()
	whales := make([]*entity.WhaleProfile, 0, len(holders))
	for _, holder := range holders {
		usdValue := holder.UIAmount * tokenPrice
		if !s.cfg.IsWhale(usdValue) {
			continue
		}

		profile := &entity.WhaleProfile{
			Address:      holder.Address,
			TokenMint:    tokenMint,
			Holdings:     holder.UIAmount,
			UsdValue:     usdValue,
			FirstSeen:    now,
			LastActivity: now,
			Behavior:     entity.BehaviorUnknown,
		}
		s.whales.Register(profile)
		whales = append(whales, profile)
	}

	s.logger.Info("Discovered whales",
		zap.String("mint", tokenMint),
		zap.Int("holders_scanned", len(holders)),
		zap.Int("whales_found", len(whales)))
	return whales, nil
}

// AnalyzeWhale fetches and parses a wallet's recent transactions, classifies
// its behavior, detects patterns and updates the registry entry
func (s *WhaleTrackingApplicationService) AnalyzeWhale(ctx context.Context, wallet, tokenMint string, tokenPrice float64) (*entity.WhaleAnalysis, error) {
	raw, err := s.provider.GetRecentTransactions(ctx, wallet, analysisTxLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for %s: %w", wallet, err)
	}

	parsed := make([]*entity.ParsedTransaction, 0, len(raw))
	for _, tx := range raw {
		parsed = append(parsed, s.classifier.Parse(tx, wallet))
	}
	s.whales.CacheTransactions(wallet, parsed)

	behavior := s.detector.AnalyzeBehavior(wallet, tokenMint, parsed, s.cfg)

	var patterns []*entity.Pattern
	if p := s.detector.DetectAccumulationPattern(wallet, tokenMint, parsed, tokenPrice, s.cfg); p != nil {
		patterns = append(patterns, p)
	}
	if p := s.detector.DetectDistributionPattern(wallet, tokenMint, parsed, tokenPrice, s.cfg); p != nil {
		patterns = append(patterns, p)
	}

	txCount := len(parsed)
	s.whales.Update(tokenMint, wallet, entity.WhaleProfileUpdate{
		Behavior:      behavior,
		RecentTxCount: &txCount,
	})

	s.logger.Info("Analyzed whale",
		zap.String("wallet", wallet),
		zap.String("mint", tokenMint),
		zap.String("behavior", string(behavior)),
		zap.Int("patterns", len(patterns)))

	return &entity.WhaleAnalysis{
		WhaleAddress: wallet,
		TokenMint:    tokenMint,
		Behavior:     behavior,
		Patterns:     patterns,
	}, nil
}

// ProcessTransactions records every significant movement found in the batch,
// preserving input order, and publishes each recorded movement
func (s *WhaleTrackingApplicationService) ProcessTransactions(ctx context.Context, transactions []*entity.ParsedTransaction, whale, tokenMint string, tokenPrice float64) ([]*entity.WhaleMovement, error) {
	var recorded []*entity.WhaleMovement
	for _, tx := range transactions {
		movement := entity.NewWhaleMovement(tx, whale, tokenMint, tokenPrice, s.cfg)
		if movement == nil {
			continue
		}

		s.movements.Record(movement)
		recorded = append(recorded, movement)

		if s.publisher != nil {
			if err := s.publisher.PublishMovement(ctx, movement); err != nil {
				s.logger.Error("Failed to publish movement",
					zap.String("id", movement.ID),
					zap.Error(err))
				// Recording succeeded; publishing is best-effort
			}
		}
	}

	s.logger.Info("Processed transactions",
		zap.String("whale", whale),
		zap.String("mint", tokenMint),
		zap.Int("transactions", len(transactions)),
		zap.Int("movements", len(recorded)))
	return recorded, nil
}

// GetTrackedWhales retrieves all registered whales for a token
func (s *WhaleTrackingApplicationService) GetTrackedWhales(ctx context.Context, tokenMint string) ([]*entity.WhaleProfile, error) {
	return s.whales.GetByToken(tokenMint), nil
}

// GetWhaleProfile retrieves a single whale profile, nil when not registered
func (s *WhaleTrackingApplicationService) GetWhaleProfile(ctx context.Context, tokenMint, address string) (*entity.WhaleProfile, error) {
	profile, ok := s.whales.Get(tokenMint, address)
	if !ok {
		return nil, nil
	}
	return profile, nil
}

// GetWhaleActivitySummary aggregates registered whales by behavior
func (s *WhaleTrackingApplicationService) GetWhaleActivitySummary(ctx context.Context, tokenMint string) (*entity.WhaleActivitySummary, error) {
	return s.whales.GetActivitySummary(tokenMint), nil
}
