package analysis

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
	RiskUnknown  RiskLevel = "UNKNOWN"
)

type EntityType string

const (
	EntityExchange   EntityType = "Exchange"
	EntityDEX        EntityType = "DEX"
	EntityMixer      EntityType = "Mixer"
	EntityBridge     EntityType = "Bridge"
	EntityRansomware EntityType = "Ransomware"
	EntityIndividual EntityType = "Individual"
	EntityContract   EntityType = "Smart_Contract"
	EntitySystem     EntityType = "System"
	EntityUnknown    EntityType = "Unknown"
)

// EntityInfo labels an address with a known or inferred identity.
type EntityInfo struct {
	Name       string     `json:"name"`
	Type       EntityType `json:"type"`
	Risk       RiskLevel  `json:"risk"`
	Confidence string     `json:"confidence,omitempty"`
}

// Patterns holds the suspicious-behavior checks run over a transaction set.
type Patterns struct {
	RapidSuccession        bool      `json:"rapid_succession"`
	RoundAmounts           []float64 `json:"round_amounts"`
	DustTransactions       []float64 `json:"dust_transactions"`
	HighFrequencyWallet    bool      `json:"high_frequency_wallet"`
	MixingServiceSuspicion bool      `json:"mixing_service_suspicion"`
	ConsolidationPattern   bool      `json:"consolidation_pattern"`
	LayeringPattern        bool      `json:"layering_pattern"`
}

// ActiveCount returns how many boolean patterns fired.
func (p Patterns) ActiveCount() int {
	count := 0
	for _, active := range []bool{
		p.RapidSuccession,
		p.HighFrequencyWallet,
		p.MixingServiceSuspicion,
		p.ConsolidationPattern,
		p.LayeringPattern,
	} {
		if active {
			count++
		}
	}

	return count
}

// Counterparty is an address ranked by transferred volume.
type Counterparty struct {
	Address string  `json:"address"`
	Volume  float64 `json:"volume"`
}

// Summary is the full result of analyzing one address on one chain.
type Summary struct {
	Address   string `json:"address"`
	ChainID   int64  `json:"chain_id"`
	ChainName string `json:"chain_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	TotalTransactions int     `json:"total_transactions"`
	TotalVolumeIn     float64 `json:"total_volume_in"`
	TotalVolumeOut    float64 `json:"total_volume_out"`
	NetFlow           float64 `json:"net_flow"`
	UniqueSenders     int     `json:"unique_senders"`
	UniqueReceivers   int     `json:"unique_receivers"`

	AvgTransactionValue    float64 `json:"avg_transaction_value"`
	MedianTransactionValue float64 `json:"median_transaction_value"`
	MaxTransactionValue    float64 `json:"max_transaction_value"`

	TopVictims    []Counterparty `json:"top_victims"`
	TopSuspects   []Counterparty `json:"top_suspects"`
	CashOutPoints []string       `json:"cash_out_points"`

	Patterns        Patterns   `json:"patterns"`
	RiskScore       int        `json:"risk_score"`
	RiskFactors     []string   `json:"risk_factors"`
	ConfidenceScore int        `json:"confidence_score"`
	EntityInfo      EntityInfo `json:"entity_info"`

	IncomingAddresses map[string]float64 `json:"incoming_addresses"`
	OutgoingAddresses map[string]float64 `json:"outgoing_addresses"`
}

// RiskLevel bands the numeric score the way reports present it.
func (s *Summary) RiskLevel() RiskLevel {
	switch {
	case s.RiskScore >= 70:
		return RiskCritical
	case s.RiskScore >= 50:
		return RiskHigh
	case s.RiskScore >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Record is a persisted analysis run.
type Record struct {
	ID uuid.UUID `gorm:"primary_key"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Address   string `gorm:"index"`
	ChainID   int64
	ChainName string

	RiskScore       int
	ConfidenceScore int

	// Serialized Summary, graph GEXF and tx counts for later retrieval.
	SummaryJSON string `gorm:"type:text"`
	GraphGEXF   string `gorm:"type:text"`
	CountsJSON  string
}

func (r *Record) TableName() string {
	return "analyses"
}
