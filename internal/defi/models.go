package defi

import "time"

// Swap is one DEX trade attributed to the investigated address.
type Swap struct {
	Type      string  `json:"type"`
	TxHash    string  `json:"tx_hash"`
	Timestamp int64   `json:"timestamp"`
	Address   string  `json:"address"`
	TokenIn   string  `json:"token_in"`
	AmountIn  float64 `json:"amount_in"`
	TokenOut  string  `json:"token_out"`
	AmountOut float64 `json:"amount_out"`
	USDValue  float64 `json:"usd_value"`
	Pool      string  `json:"pool"`
	FeeTier   string  `json:"fee_tier"`
}

// Position is an active liquidity position.
type Position struct {
	Type            string  `json:"type"`
	PositionID      string  `json:"position_id"`
	Owner           string  `json:"owner"`
	Pool            string  `json:"pool"`
	Token0          string  `json:"token_0"`
	Token1          string  `json:"token_1"`
	FeeTier         string  `json:"fee_tier"`
	Liquidity       float64 `json:"liquidity"`
	TickLower       int64   `json:"tick_lower"`
	TickUpper       int64   `json:"tick_upper"`
	DepositedToken0 float64 `json:"deposited_token_0"`
	DepositedToken1 float64 `json:"deposited_token_1"`
	FeesCollected0  float64 `json:"fees_collected_0"`
	FeesCollected1  float64 `json:"fees_collected_1"`
}

// LendingPosition is one Aave reserve the address supplies or borrows.
type LendingPosition struct {
	Token  string  `json:"token"`
	Amount float64 `json:"amount"`
}

// AaveActivity summarizes the address on the lending protocol.
type AaveActivity struct {
	Type         string            `json:"type"`
	Address      string            `json:"address"`
	Supplies     []LendingPosition `json:"supplies"`
	Borrows      []LendingPosition `json:"borrows"`
	ActivityType string            `json:"activity_type"`
}

// YieldFarm is an LP position actively earning fees.
type YieldFarm struct {
	Type        string   `json:"type"`
	PositionID  string   `json:"position_id"`
	Tokens      string   `json:"tokens"`
	FeesEarned0 float64  `json:"fees_earned_0"`
	FeesEarned1 float64  `json:"fees_earned_1"`
	APYEstimate *float64 `json:"apy_estimate"`
}

// ActivitySummary rolls up protocol usage for the report.
type ActivitySummary struct {
	ProtocolsUsed     []string `json:"protocols_used"`
	TotalSwaps        int      `json:"total_swaps"`
	ActiveLPPositions int      `json:"active_lp_positions"`
	BorrowedAssets    int      `json:"borrowed_assets"`
	LendingActivity   bool     `json:"lending_activity"`
	IsTrader          bool     `json:"is_trader"`
	IsLP              bool     `json:"is_lp"`
	RiskAssessment    string   `json:"risk_assessment"`
}

// Activity is the consolidated DeFi picture for one address.
type Activity struct {
	Address    string          `json:"address"`
	Swaps      []Swap          `json:"swaps"`
	Positions  []Position      `json:"positions"`
	Aave       *AaveActivity   `json:"aave,omitempty"`
	YieldFarms []YieldFarm     `json:"yield_farms"`
	Summary    ActivitySummary `json:"activity_summary"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}
