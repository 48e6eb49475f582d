package cluster

// Counterparty is an address linked to the target through repeated activity.
type Counterparty struct {
	Address        string  `json:"address"`
	ConnectionType string  `json:"connection_type"`
	RiskScore      float64 `json:"risk_score"`
}

// DustRecipient is an address that received dust-sized amounts.
type DustRecipient struct {
	Address      string  `json:"address"`
	Pattern      string  `json:"pattern"`
	RiskScore    float64 `json:"risk_score"`
	IsSuspicious bool    `json:"is_suspicious"`
}

// CircularPath is a cycle of value flow returning to the origin.
type CircularPath struct {
	Path         []string `json:"path"`
	Pattern      string   `json:"pattern"`
	RiskScore    float64  `json:"risk_score"`
	IsSuspicious bool     `json:"is_suspicious"`
}

// TimingCluster is a burst of transactions packed into a short window.
type TimingCluster struct {
	ClusterSize  int     `json:"cluster_size"`
	StartTime    int64   `json:"start_time"`
	EndTime      int64   `json:"end_time"`
	Pattern      string  `json:"pattern"`
	RiskScore    float64 `json:"risk_score"`
	IsSuspicious bool    `json:"is_suspicious"`
}

// AmountCluster is an identical amount repeated across distinct recipients.
type AmountCluster struct {
	Amount         float64 `json:"amount"`
	RecipientCount int     `json:"recipient_count"`
	Pattern        string  `json:"pattern"`
	RiskScore      float64 `json:"risk_score"`
	IsSuspicious   bool    `json:"is_suspicious"`
}

// Clusters groups every relationship class found around one address.
type Clusters struct {
	SuspiciousCounterparties []Counterparty  `json:"suspicious_counterparties"`
	DustAttacks              []DustRecipient `json:"dust_attacks"`
	CircularPatterns         []CircularPath  `json:"circular_patterns"`
	TimingClusters           []TimingCluster `json:"timing_clusters"`
	AmountClusters           []AmountCluster `json:"amount_clusters"`
}
