package anomaly

// Anomaly is a transaction that deviates from the wallet's usual behavior.
type Anomaly struct {
	Hash         string   `json:"hash"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	Amount       float64  `json:"amount"`
	Timestamp    int64    `json:"timestamp"`
	AnomalyScore float64  `json:"anomaly_score"`
	Reasons      []string `json:"reasons"`
	IsSuspicious bool     `json:"is_suspicious"`
}

// Baseline captures the normal behavioral profile of a wallet.
type Baseline struct {
	AvgAmount    float64 `json:"avg_amount"`
	MedianAmount float64 `json:"median_amount"`
	StdAmount    float64 `json:"std_amount"`
	MaxAmount    float64 `json:"max_amount"`
	MinAmount    float64 `json:"min_amount"`
	AvgFrequency float64 `json:"avg_frequency"` // transactions per day
	ActiveHours  []int   `json:"activity_hours"`
	ActiveDays   []int   `json:"active_days"`
}
