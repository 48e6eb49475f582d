package report

import (
	"time"

	"github.com/openchain-labs/openchain-ir/internal/ai"
	"github.com/openchain-labs/openchain-ir/internal/analysis"
)

const (
	evidenceType = "Ethereum Blockchain Transaction Analysis"
	analysisTool = "OPENCHAIN IR (Forensic Analysis Platform)"

	// Counterparty transfers above this multiple of the average transaction
	// value are highlighted in report tables.
	largeTransferMultiple = 5

	narrativeLimit = 800
)

// FlowEntry is one counterparty row in a report table.
type FlowEntry struct {
	Address string  `json:"address"`
	Amount  float64 `json:"amount_eth"`
	Status  string  `json:"status"`
}

// RiskSection summarizes the scored risk for report consumers.
type RiskSection struct {
	Level   analysis.RiskLevel `json:"level"`
	Score   int                `json:"score"`
	Factors []string           `json:"factors"`
}

// SummarySection is the executive summary table of a forensic report.
type SummarySection struct {
	Address           string  `json:"address"`
	ChainName         string  `json:"chain_name"`
	TotalTransactions int     `json:"total_transactions"`
	TotalInflow       float64 `json:"total_inflow_eth"`
	TotalOutflow      float64 `json:"total_outflow_eth"`
	NetFlow           float64 `json:"net_flow_eth"`
	UniqueSenders     int     `json:"unique_senders"`
	UniqueReceivers   int     `json:"unique_receivers"`
	AvgTransaction    float64 `json:"avg_transaction_eth"`
	AnalysisPeriod    string  `json:"analysis_period"`
}

// ForensicReport is the full audit report for one analyzed address.
type ForensicReport struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`

	Summary       SummarySection `json:"summary"`
	Patterns      []string       `json:"patterns"`
	Risk          RiskSection    `json:"risk"`
	Inbound       []FlowEntry    `json:"inbound"`
	Outbound      []FlowEntry    `json:"outbound"`
	CashOutAlerts []string       `json:"cash_out_alerts,omitempty"`
	Findings      []string       `json:"findings,omitempty"`
	Narrative     *ai.Insights   `json:"narrative,omitempty"`
}

// CustodyItem is one row of the evidence chain-of-custody table.
type CustodyItem struct {
	Item        string `json:"item"`
	Description string `json:"description"`
	CollectedBy string `json:"collected_by"`
	Date        string `json:"date"`
}

// KeyFindings is the metrics table of an FIR report.
type KeyFindings struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalReceived     float64 `json:"total_received_eth"`
	TotalSent         float64 `json:"total_sent_eth"`
	NetFlow           float64 `json:"net_flow_eth"`
	RiskScore         int     `json:"risk_score"`
	ConfidenceLevel   int     `json:"confidence_level"`
	EntityType        string  `json:"entity_type"`
	PatternsDetected  int     `json:"patterns_detected"`
}

// LegalReport is an FIR-style document prepared for law enforcement.
type LegalReport struct {
	FIRNumber     string `json:"fir_number"`
	ReportDate    string `json:"report_date"`
	ReportTime    string `json:"report_time"`
	Investigator  string `json:"investigator"`
	Department    string `json:"department"`
	EvidenceType  string `json:"evidence_type"`
	TargetAddress string `json:"target_address"`

	Findings     KeyFindings `json:"findings"`
	Narrative    string      `json:"narrative"`
	Patterns     []string    `json:"patterns"`
	RiskCategory string      `json:"risk_category"`
	RiskScore    int         `json:"risk_score"`
	Assessment   string      `json:"assessment"`

	Sources      []FlowEntry `json:"sources"`
	Destinations []FlowEntry `json:"destinations"`

	Custody       []CustodyItem `json:"custody"`
	Verification  string        `json:"verification"`
	Certification string        `json:"certification"`
}
