package monitor

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

type AlertType string

const (
	AlertNewTransaction   AlertType = "new_transaction"
	AlertUnusualFrequency AlertType = "unusual_frequency"
	AlertUnusualAmount    AlertType = "unusual_amount"
	AlertNewCounterparty  AlertType = "new_counterparty"
	AlertBalanceChange    AlertType = "balance_change"
)

// Job is one monitored address with its alert toggles and check statistics.
type Job struct {
	ID uuid.UUID `gorm:"primary_key" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Address string `gorm:"index" json:"address"`
	ChainID int64  `json:"chain_id"`
	Active  bool   `json:"active"`

	AlertOnNewTx           bool `json:"alert_on_new_tx"`
	AlertOnAnomaly         bool `json:"alert_on_anomaly"`
	AlertOnNewCounterparty bool `json:"alert_on_new_counterparty"`

	LastCheckedAt     *time.Time `json:"last_checked_at,omitempty"`
	LastTxCount       int        `json:"last_tx_count"`
	LastBalance       string     `json:"last_balance"`
	CheckCount        int        `json:"check_count"`
	AnomaliesDetected int        `json:"anomalies_detected"`

	// Comma-separated lowercased addresses seen as counterparties.
	KnownCounterparties string `gorm:"type:text" json:"-"`
}

func (j *Job) TableName() string {
	return "monitoring_jobs"
}

// Alert is one persisted monitoring alert.
type Alert struct {
	ID uuid.UUID `gorm:"primary_key" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Address      string    `gorm:"index" json:"address"`
	Type         AlertType `json:"type"`
	Severity     Severity  `json:"severity"`
	Description  string    `json:"description"`
	MetadataJSON string    `gorm:"type:text" json:"-"`
	Acknowledged bool      `json:"acknowledged"`
}

func (a *Alert) TableName() string {
	return "monitoring_alerts"
}

// Event is the alert payload published on the alerts subject.
type Event struct {
	ID          uuid.UUID         `json:"id"`
	Address     string            `json:"address"`
	Type        AlertType         `json:"type"`
	Severity    Severity          `json:"severity"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// Status aggregates monitoring state for the status endpoint.
type Status struct {
	MonitoringActive     bool  `json:"monitoring_active"`
	TotalMonitored       int   `json:"total_monitored"`
	CheckIntervalSeconds int   `json:"check_interval_seconds"`
	TotalChecksPerformed int   `json:"total_checks_performed"`
	TotalAnomalies       int   `json:"total_anomalies"`
	TotalAlerts          int64 `json:"total_alerts"`
	UnacknowledgedAlerts int64 `json:"unacknowledged_alerts"`
	Jobs                 []Job `json:"addresses"`
}
