package service

import (
	"strings"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"
)

// Known DEX, staking and liquid-staking program source labels
var (
	swapSources  = []string{"JUPITER", "RAYDIUM", "ORCA"}
	stakeSources = []string{"MARINADE", "JITO"}
)

// TransactionClassifierService maps raw enhanced transactions into semantic
// transaction types and wallet-relative transfer breakdowns
type TransactionClassifierService struct {
	logger *logger.Logger
}

// NewTransactionClassifierService creates a new transaction classifier
func NewTransactionClassifierService(logger *logger.Logger) *TransactionClassifierService {
	return &TransactionClassifierService{
		logger: logger.WithComponent("tx-classifier"),
	}
}

// Classify determines the semantic type of a raw transaction. Matching is
// case-insensitive substring matching on the type and source labels; first
// match wins.
func (s *TransactionClassifierService) Classify(tx *entity.RawTransaction) entity.TransactionType {
	txType := strings.ToUpper(tx.Type)
	source := strings.ToUpper(tx.Source)

	if strings.Contains(txType, "SWAP") || containsAny(source, swapSources) {
		return entity.TransactionTypeSwap
	}

	if strings.Contains(txType, "STAKE") || containsAny(source, stakeSources) {
		if strings.Contains(txType, "UNSTAKE") || strings.Contains(txType, "WITHDRAW") {
			return entity.TransactionTypeUnstake
		}
		return entity.TransactionTypeStake
	}

	if strings.Contains(txType, "TRANSFER") || len(tx.TokenTransfers) == 1 || len(tx.NativeTransfers) > 0 {
		return entity.TransactionTypeTransfer
	}

	return entity.TransactionTypeUnknown
}

// CategorizeTransfers partitions token transfers by whether the tracked
// wallet receives or sends. Transfers involving neither side are dropped.
func (s *TransactionClassifierService) CategorizeTransfers(transfers []entity.TokenTransfer, wallet string) (incoming, outgoing []entity.TokenTransfer) {
	for _, t := range transfers {
		switch wallet {
		case t.ToUserAccount:
			incoming = append(incoming, t)
		case t.FromUserAccount:
			outgoing = append(outgoing, t)
		}
	}
	return incoming, outgoing
}

// Parse reduces a raw transaction to the view relevant to trackedWallet.
//
// For swaps, tokenIn is the first outgoing transfer (what the wallet gave
// up) and tokenOut the first incoming one (what it received). "First" is
// provider list order, not amount-ranked, which is an approximation for
// multi-leg swaps. Derived token amounts carry decimals=0 because the
// transfer records have no decimal metadata.
func (s *TransactionClassifierService) Parse(tx *entity.RawTransaction, trackedWallet string) *entity.ParsedTransaction {
	parsed := &entity.ParsedTransaction{
		Signature: tx.Signature,
		Timestamp: tx.Timestamp,
		Type:      s.Classify(tx),
		Source:    tx.Source,
		Fee:       float64(tx.Fee) / entity.LamportsPerSol,
		Success:   true,
	}

	incoming, outgoing := s.CategorizeTransfers(tx.TokenTransfers, trackedWallet)

	switch parsed.Type {
	case entity.TransactionTypeSwap:
		if len(incoming) > 0 && len(outgoing) > 0 {
			parsed.TokenIn = tokenAmountFromTransfer(outgoing[0])
			parsed.TokenOut = tokenAmountFromTransfer(incoming[0])
		}
	case entity.TransactionTypeTransfer:
		if len(incoming) > 0 {
			parsed.Transfer = tokenAmountFromTransfer(incoming[0])
		} else if len(outgoing) > 0 {
			parsed.Transfer = tokenAmountFromTransfer(outgoing[0])
		}
	}

	return parsed
}

func tokenAmountFromTransfer(t entity.TokenTransfer) *entity.TokenAmount {
	return &entity.TokenAmount{
		Mint:     t.Mint,
		Amount:   t.TokenAmount,
		Decimals: 0,
		UIAmount: t.TokenAmount,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
