package entity

// TransactionType is the semantic classification of a raw transaction
type TransactionType string

const (
	TransactionTypeSwap     TransactionType = "swap"
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeStake    TransactionType = "stake"
	TransactionTypeUnstake  TransactionType = "unstake"
	TransactionTypeUnknown  TransactionType = "unknown"
)

// LamportsPerSol is the number of lamports in one SOL
const LamportsPerSol = 1_000_000_000

// RawTransaction represents an enhanced transaction as returned by the
// Helius transactions API. The feed only contains confirmed transactions.
type RawTransaction struct {
	Signature       string           `json:"signature"`
	Timestamp       int64            `json:"timestamp"`
	Type            string           `json:"type"`
	Source          string           `json:"source"`
	Fee             int64            `json:"fee"`
	FeePayer        string           `json:"feePayer"`
	Slot            int64            `json:"slot"`
	Description     string           `json:"description"`
	TokenTransfers  []TokenTransfer  `json:"tokenTransfers"`
	NativeTransfers []NativeTransfer `json:"nativeTransfers"`
}

// TokenTransfer represents a single SPL token transfer leg
type TokenTransfer struct {
	FromUserAccount string  `json:"fromUserAccount"`
	ToUserAccount   string  `json:"toUserAccount"`
	Mint            string  `json:"mint"`
	TokenAmount     float64 `json:"tokenAmount"`
}

// NativeTransfer represents a SOL transfer in lamports
type NativeTransfer struct {
	FromUserAccount string `json:"fromUserAccount"`
	ToUserAccount   string `json:"toUserAccount"`
	Amount          int64  `json:"amount"`
}

// TokenAmount is a simplified token quantity attached to a parsed
// transaction. Decimals is always 0 here: the enhanced transfer records do
// not carry decimal metadata, so UIAmount mirrors Amount as-is.
type TokenAmount struct {
	Mint     string  `json:"mint"`
	Amount   float64 `json:"amount"`
	Decimals int     `json:"decimals"`
	UIAmount float64 `json:"uiAmount"`
}

// ParsedTransaction is a raw transaction reduced to the view relevant to a
// single tracked wallet. Exactly one of TokenIn/TokenOut (swaps) or Transfer
// (plain transfers) is populated, depending on Type.
type ParsedTransaction struct {
	Signature string          `json:"signature"`
	Timestamp int64           `json:"timestamp"`
	Type      TransactionType `json:"type"`
	Source    string          `json:"source"`
	Fee       float64         `json:"fee"`
	Success   bool            `json:"success"`
	TokenIn   *TokenAmount    `json:"tokenIn,omitempty"`
	TokenOut  *TokenAmount    `json:"tokenOut,omitempty"`
	Transfer  *TokenAmount    `json:"transfer,omitempty"`
}

// TokenHolder represents a token account balance as returned by the RPC
// token methods (getTokenLargestAccounts, getTokenAccountsByOwner)
type TokenHolder struct {
	Address  string  `json:"address"`
	Amount   string  `json:"amount"`
	Decimals int     `json:"decimals"`
	UIAmount float64 `json:"uiAmount"`
}
