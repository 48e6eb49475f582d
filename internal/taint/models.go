package taint

// Path is one traced route of funds away from the source address.
type Path struct {
	Hops         []string `json:"path"`
	Depth        int      `json:"depth"`
	FinalAmount  float64  `json:"final_amount"`
	TerminatedAt string   `json:"terminated_at"`
}

// Touchpoint records funds passing through a known intermediary.
type Touchpoint struct {
	Address string  `json:"address"`
	Kind    string  `json:"kind"` // mixer, bridge, cex
	Depth   int     `json:"found_at_depth"`
	Amount  float64 `json:"amount"`
}

// Interaction is a single transaction with a known mixer or bridge.
type Interaction struct {
	Type      string `json:"type"`
	Address   string `json:"address"`
	TxHash    string `json:"tx_hash"`
	Amount    string `json:"amount"`
	Timestamp string `json:"timestamp"`
	Risk      string `json:"risk"`
}

// RiskAssessment scores how tainted the traced flow looks.
type RiskAssessment struct {
	RiskScore   int      `json:"risk_score"`
	RiskLevel   string   `json:"risk_level"`
	RiskFactors []string `json:"risk_factors"`
}

// Trace is the complete fund-flow picture for one source address.
type Trace struct {
	Source      string       `json:"source"`
	Paths       []Path       `json:"paths"`
	MixerUsage  []Touchpoint `json:"mixer_usage"`
	BridgeUsage []Touchpoint `json:"bridge_usage"`
	CEXDeposits []Touchpoint `json:"cex_deposits"`

	TotalPaths         int     `json:"total_paths"`
	MaxDepth           int     `json:"max_depth"`
	TotalAmountTraced  float64 `json:"total_amount_traced"`
	AmountLostToMixing float64 `json:"amount_lost_to_mixing"`

	Risk            RiskAssessment `json:"risk_assessment"`
	Recommendations []string       `json:"recommendations"`
}

// SwapPattern is a burst of exchange deposits and withdrawals inside one
// short time window, a shape typical for atomic swaps and quick cash-outs.
type SwapPattern struct {
	WindowStart int64    `json:"window_start"`
	Deposits    int      `json:"deposits"`
	Withdrawals int      `json:"withdrawals"`
	Exchanges   []string `json:"exchanges"`
}
