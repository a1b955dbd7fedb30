package entity

import (
	"github.com/google/uuid"
)

// MovementDirection indicates whether tokens flowed into or out of a wallet
type MovementDirection string

const (
	MovementDirectionIn  MovementDirection = "in"
	MovementDirectionOut MovementDirection = "out"
)

// MarketSentiment summarizes net flow over a window
type MarketSentiment string

const (
	SentimentBullish MarketSentiment = "bullish"
	SentimentBearish MarketSentiment = "bearish"
	SentimentNeutral MarketSentiment = "neutral"
)

// WhaleMovement represents a significant token movement by a whale wallet.
// Timestamp is in milliseconds.
type WhaleMovement struct {
	ID           string            `json:"id"`
	Timestamp    int64             `json:"timestamp"`
	WhaleAddress string            `json:"whaleAddress"`
	Type         TransactionType   `json:"type"`
	TokenMint    string            `json:"tokenMint"`
	Amount       float64           `json:"amount"`
	UsdValue     float64           `json:"usdValue"`
	Signature    string            `json:"signature"`
	Direction    MovementDirection `json:"direction"`
}

// MovementStats aggregates recorded movements for a token over a window
type MovementStats struct {
	TokenMint          string         `json:"tokenMint"`
	TotalMovements     int            `json:"totalMovements"`
	TotalVolumeUsd     float64        `json:"totalVolumeUsd"`
	InflowCount        int            `json:"inflowCount"`
	OutflowCount       int            `json:"outflowCount"`
	InflowUsd          float64        `json:"inflowUsd"`
	OutflowUsd         float64        `json:"outflowUsd"`
	LargestMovement    *WhaleMovement `json:"largestMovement,omitempty"`
	AverageMovementUsd float64        `json:"averageMovementUsd"`
	SwapCount          int            `json:"swapCount"`
	TransferCount      int            `json:"transferCount"`
	StakeCount         int            `json:"stakeCount"`
}

// NetFlow is the signed in-minus-out flow for a token over a window
type NetFlow struct {
	TokenMint  string          `json:"tokenMint"`
	NetFlowUsd float64         `json:"netFlowUsd"`
	NetAmount  float64         `json:"netAmount"`
	Sentiment  MarketSentiment `json:"sentiment"`
}

// NewWhaleMovement builds a movement from a parsed transaction, or returns
// nil when the transaction does not concern tokenMint or the resulting USD
// value is below the significance threshold.
//
// Plain transfers are always recorded as direction "out": the enhanced feed
// does not disambiguate direction for them without further account
// inspection. Swap legs are matched against the tracked mint.
func NewWhaleMovement(tx *ParsedTransaction, whale, tokenMint string, tokenPrice float64, cfg WhaleConfig) *WhaleMovement {
	var amount float64
	var direction MovementDirection

	switch tx.Type {
	case TransactionTypeSwap:
		if tx.TokenOut != nil && tx.TokenOut.Mint == tokenMint {
			direction = MovementDirectionIn
			amount = tx.TokenOut.UIAmount
		} else if tx.TokenIn != nil && tx.TokenIn.Mint == tokenMint {
			direction = MovementDirectionOut
			amount = tx.TokenIn.UIAmount
		} else {
			return nil
		}
	case TransactionTypeTransfer:
		if tx.Transfer == nil || tx.Transfer.Mint != tokenMint {
			return nil
		}
		direction = MovementDirectionOut
		amount = tx.Transfer.UIAmount
	case TransactionTypeStake, TransactionTypeUnstake:
		if tx.Type == TransactionTypeStake {
			direction = MovementDirectionOut
		} else {
			direction = MovementDirectionIn
		}
		if tx.TokenIn != nil {
			amount = tx.TokenIn.UIAmount
		}
	default:
		return nil
	}

	usdValue := amount * tokenPrice
	if !cfg.IsSignificantMovement(usdValue) {
		return nil
	}

	return &WhaleMovement{
		ID:           uuid.NewString(),
		Timestamp:    tx.Timestamp * 1000,
		WhaleAddress: whale,
		Type:         tx.Type,
		TokenMint:    tokenMint,
		Amount:       amount,
		UsdValue:     usdValue,
		Signature:    tx.Signature,
		Direction:    direction,
	}
}
