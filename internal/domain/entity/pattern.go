package entity

// PatternType is the kind of trading pattern detected for a whale
type PatternType string

const (
	PatternAccumulation PatternType = "accumulation"
	PatternDistribution PatternType = "distribution"
)

// Pattern describes a detected accumulation or distribution pattern.
// Window timestamps are in milliseconds; Confidence is clamped to [0, 1].
type Pattern struct {
	WhaleAddress     string      `json:"whaleAddress"`
	TokenMint        string      `json:"tokenMint"`
	Type             PatternType `json:"type"`
	TransactionCount int         `json:"transactionCount"`
	TotalAmount      float64     `json:"totalAmount"`
	TotalUsdValue    float64     `json:"totalUsdValue"`
	WindowStart      int64       `json:"windowStart"`
	WindowEnd        int64       `json:"windowEnd"`
	Confidence       float64     `json:"confidence"`
}
