package service

import (
	"testing"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassifier() *TransactionClassifierService {
	return NewTransactionClassifierService(logger.NewNop())
}

func TestClassify(t *testing.T) {
	c := newClassifier()

	tests := []struct {
		name string
		tx   entity.RawTransaction
		want entity.TransactionType
	}{
		{
			name: "swap by type label",
			tx:   entity.RawTransaction{Type: "SWAP"},
			want: entity.TransactionTypeSwap,
		},
		{
			name: "swap by jupiter source with empty type",
			tx:   entity.RawTransaction{Source: "jupiter"},
			want: entity.TransactionTypeSwap,
		},
		{
			name: "swap wins over transfer signals",
			tx: entity.RawTransaction{
				Type:   "SWAP",
				Source: "RAYDIUM",
				TokenTransfers: []entity.TokenTransfer{
					{Mint: "mintA"},
				},
			},
			want: entity.TransactionTypeSwap,
		},
		{
			name: "stake by marinade source",
			tx:   entity.RawTransaction{Source: "MARINADE"},
			want: entity.TransactionTypeStake,
		},
		{
			name: "unstake by type label",
			tx:   entity.RawTransaction{Type: "UNSTAKE"},
			want: entity.TransactionTypeUnstake,
		},
		{
			name: "withdraw from jito is unstake",
			tx:   entity.RawTransaction{Type: "WITHDRAW", Source: "JITO"},
			want: entity.TransactionTypeUnstake,
		},
		{
			name: "single token transfer with no keywords",
			tx: entity.RawTransaction{
				Type: "UNKNOWN_PROGRAM",
				TokenTransfers: []entity.TokenTransfer{
					{Mint: "mintA"},
				},
			},
			want: entity.TransactionTypeTransfer,
		},
		{
			name: "native transfer only",
			tx: entity.RawTransaction{
				NativeTransfers: []entity.NativeTransfer{
					{FromUserAccount: "a", ToUserAccount: "b", Amount: 100},
				},
			},
			want: entity.TransactionTypeTransfer,
		},
		{
			name: "two token transfers and no keywords is not a plain transfer",
			tx: entity.RawTransaction{
				TokenTransfers: []entity.TokenTransfer{
					{Mint: "mintA"},
					{Mint: "mintB"},
				},
			},
			want: entity.TransactionTypeUnknown,
		},
		{
			name: "no signals at all",
			tx:   entity.RawTransaction{Type: "NFT_SALE", Source: "MAGIC_EDEN"},
			want: entity.TransactionTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(&tt.tx))
		})
	}
}

func TestCategorizeTransfers(t *testing.T) {
	c := newClassifier()

	transfers := []entity.TokenTransfer{
		{FromUserAccount: "wallet", ToUserAccount: "other", Mint: "mintA", TokenAmount: 10},
		{FromUserAccount: "other", ToUserAccount: "wallet", Mint: "mintB", TokenAmount: 20},
		{FromUserAccount: "x", ToUserAccount: "y", Mint: "mintC", TokenAmount: 30},
	}

	incoming, outgoing := c.CategorizeTransfers(transfers, "wallet")

	require.Len(t, incoming, 1)
	require.Len(t, outgoing, 1)
	assert.Equal(t, "mintB", incoming[0].Mint)
	assert.Equal(t, "mintA", outgoing[0].Mint)
}

func TestParseSwap(t *testing.T) {
	c := newClassifier()

	tx := &entity.RawTransaction{
		Signature: "sig1",
		Timestamp: 1_700_000_000,
		Type:      "SWAP",
		Source:    "JUPITER",
		Fee:       5000,
		TokenTransfers: []entity.TokenTransfer{
			{FromUserAccount: "wallet", ToUserAccount: "pool", Mint: "USDC", TokenAmount: 1500},
			{FromUserAccount: "pool", ToUserAccount: "wallet", Mint: "SOL", TokenAmount: 10},
		},
	}

	parsed := c.Parse(tx, "wallet")

	assert.Equal(t, entity.TransactionTypeSwap, parsed.Type)
	assert.True(t, parsed.Success)
	assert.InDelta(t, 0.000005, parsed.Fee, 1e-9)

	require.NotNil(t, parsed.TokenIn)
	require.NotNil(t, parsed.TokenOut)
	assert.Equal(t, "USDC", parsed.TokenIn.Mint)
	assert.Equal(t, "SOL", parsed.TokenOut.Mint)
	assert.Equal(t, float64(10), parsed.TokenOut.UIAmount)
	assert.Equal(t, 0, parsed.TokenOut.Decimals)
	assert.Nil(t, parsed.Transfer)
}

func TestParseSwapMissingLeg(t *testing.T) {
	c := newClassifier()

	// Swap with only an incoming leg relative to the wallet
	tx := &entity.RawTransaction{
		Signature: "sig2",
		Type:      "SWAP",
		TokenTransfers: []entity.TokenTransfer{
			{FromUserAccount: "pool", ToUserAccount: "wallet", Mint: "SOL", TokenAmount: 10},
		},
	}

	parsed := c.Parse(tx, "wallet")
	assert.Nil(t, parsed.TokenIn)
	assert.Nil(t, parsed.TokenOut)
}

func TestParseTransfer(t *testing.T) {
	c := newClassifier()

	out := c.Parse(&entity.RawTransaction{
		Signature: "sig3",
		Type:      "TRANSFER",
		TokenTransfers: []entity.TokenTransfer{
			{FromUserAccount: "wallet", ToUserAccount: "other", Mint: "SOL", TokenAmount: 5},
		},
	}, "wallet")

	require.NotNil(t, out.Transfer)
	assert.Equal(t, "SOL", out.Transfer.Mint)

	// Incoming transfer is preferred when both sides exist
	in := c.Parse(&entity.RawTransaction{
		Signature: "sig4",
		Type:      "TRANSFER",
		TokenTransfers: []entity.TokenTransfer{
			{FromUserAccount: "wallet", ToUserAccount: "other", Mint: "USDC", TokenAmount: 1},
			{FromUserAccount: "other", ToUserAccount: "wallet", Mint: "SOL", TokenAmount: 2},
		},
	}, "wallet")

	require.NotNil(t, in.Transfer)
	assert.Equal(t, "SOL", in.Transfer.Mint)
}
