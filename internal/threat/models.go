package threat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sources the loader recognizes under the intel directory.
const (
	SourceChainalysis       = "chainalysis"
	SourceOFAC              = "ofac"
	SourceScamAlert         = "scamalert"
	SourceEtherscanPhishing = "etherscan_phishing"
)

// CheckResult is the verdict for one address against all loaded feeds.
type CheckResult struct {
	IsFlagged     bool     `json:"is_flagged"`
	ThreatSources []string `json:"threat_sources"`
	ThreatTypes   []string `json:"threat_types"`
	Severity      string   `json:"severity"`
	Confidence    float64  `json:"confidence"`
}

// Indicator is a persisted threat-feed entry.
type Indicator struct {
	ID uuid.UUID `gorm:"primary_key"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Address string `gorm:"index"`
	Source  string `gorm:"index"`
}

func (i *Indicator) TableName() string {
	return "threat_indicators"
}
