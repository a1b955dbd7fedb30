package pricing

import (
	"github.com/caiovicentino/whalescope/internal/domain/service"
)

// Well-known mint addresses on mainnet
const (
	MintSOL  = "So11111111111111111111111111111111111111112"
	MintUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	MintUSDT = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
	MintJUP  = "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN"
	MintBONK = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
)

// StaticPriceService resolves token prices from a fixed table. There is no
// real pricing engine; unknown mints price at 0.
type StaticPriceService struct {
	prices map[string]float64
}

// NewStaticPriceService creates the price service with the built-in table
func NewStaticPriceService() service.PriceService {
	return &StaticPriceService{
		prices: map[string]float64{
			MintSOL:  150.0,
			MintUSDC: 1.0,
			MintUSDT: 1.0,
			MintJUP:  0.85,
			MintBONK: 0.000025,
		},
	}
}

// GetTokenPrice returns the USD price for a mint, 0 when unknown
func (s *StaticPriceService) GetTokenPrice(mint string) float64 {
	return s.prices[mint]
}
