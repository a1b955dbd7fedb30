package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/domain/service"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"
)

const (
	mockSOL  = "So11111111111111111111111111111111111111112"
	mockUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// MockProvider is a deterministic blockchain data source used when no
// Helius API key is configured. Holder balances and transaction timestamps
// are generated relative to the current time so windowed queries behave.
type MockProvider struct {
	logger *logger.Logger
}

// NewMockProvider creates the static fallback provider
func NewMockProvider(logger *logger.Logger) *MockProvider {
	return &MockProvider{
		logger: logger.WithComponent("mock-provider"),
	}
}

// GetLargestTokenHolders returns a fixed descending holder list
func (m *MockProvider) GetLargestTokenHolders(ctx context.Context, mint string, limit int) ([]*entity.TokenHolder, error) {
	balances := []float64{25_000, 12_000, 4_800, 950, 120}

	holders := make([]*entity.TokenHolder, 0, len(balances))
	for i, ui := range balances {
		if limit > 0 && len(holders) == limit {
			break
		}
		holders = append(holders, &entity.TokenHolder{
			Address:  fmt.Sprintf("MockWhale%d1111111111111111111111111111111", i+1),
			Amount:   fmt.Sprintf("%.0f", ui*1e9),
			Decimals: 9,
			UIAmount: ui,
		})
	}
	return holders, nil
}

// GetRecentTransactions returns a fixed feed covering swap, transfer, stake
// and unstake shapes, newest first
func (m *MockProvider) GetRecentTransactions(ctx context.Context, address string, limit int) ([]*entity.RawTransaction, error) {
	now := time.Now().Unix()

	transactions := []*entity.RawTransaction{
		{
			Signature: "mockSwapBuy1", Timestamp: now - 600,
			Type: "SWAP", Source: "JUPITER", Fee: 5000, FeePayer: address,
			TokenTransfers: []entity.TokenTransfer{
				{FromUserAccount: address, ToUserAccount: "MockPool", Mint: mockUSDC, TokenAmount: 15_000},
				{FromUserAccount: "MockPool", ToUserAccount: address, Mint: mockSOL, TokenAmount: 100},
			},
		},
		{
			Signature: "mockSwapBuy2", Timestamp: now - 1800,
			Type: "SWAP", Source: "RAYDIUM", Fee: 5000, FeePayer: address,
			TokenTransfers: []entity.TokenTransfer{
				{FromUserAccount: address, ToUserAccount: "MockPool", Mint: mockUSDC, TokenAmount: 15_750},
				{FromUserAccount: "MockPool", ToUserAccount: address, Mint: mockSOL, TokenAmount: 105},
			},
		},
		{
			Signature: "mockSwapBuy3", Timestamp: now - 3600,
			Type: "SWAP", Source: "ORCA", Fee: 5000, FeePayer: address,
			TokenTransfers: []entity.TokenTransfer{
				{FromUserAccount: address, ToUserAccount: "MockPool", Mint: mockUSDC, TokenAmount: 14_250},
				{FromUserAccount: "MockPool", ToUserAccount: address, Mint: mockSOL, TokenAmount: 95},
			},
		},
		{
			Signature: "mockTransfer1", Timestamp: now - 7200,
			Type: "TRANSFER", Source: "SYSTEM_PROGRAM", Fee: 5000, FeePayer: address,
			TokenTransfers: []entity.TokenTransfer{
				{FromUserAccount: address, ToUserAccount: "MockRecipient", Mint: mockSOL, TokenAmount: 200},
			},
		},
		{
			Signature: "mockStake1", Timestamp: now - 10_800,
			Type: "STAKE", Source: "MARINADE", Fee: 5000, FeePayer: address,
		},
		{
			Signature: "mockUnstake1", Timestamp: now - 86_400,
			Type: "UNSTAKE_WITHDRAW", Source: "JITO", Fee: 5000, FeePayer: address,
		},
	}

	if limit > 0 && limit < len(transactions) {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

// GetTokenAccountsByOwner returns a single fixed token account
func (m *MockProvider) GetTokenAccountsByOwner(ctx context.Context, owner, mint string) ([]*entity.TokenHolder, error) {
	return []*entity.TokenHolder{
		{
			Address:  "MockTokenAccount111111111111111111111111111",
			Amount:   "5000000000000",
			Decimals: 9,
			UIAmount: 5000,
		},
	}, nil
}

var _ service.BlockchainDataService = (*MockProvider)(nil)
