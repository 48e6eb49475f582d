package batch

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobFinished JobStatus = "finished"
	JobFailed   JobStatus = "failed"
)

// Entry is one address queued for batch analysis.
type Entry struct {
	Address string `json:"address"`
	Tag     string `json:"tag"`
	Notes   string `json:"notes"`
}

// Result is the per-address outcome of a batch run.
type Result struct {
	Address string `json:"address"`
	Tag     string `json:"tag"`
	Notes   string `json:"notes,omitempty"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`

	TotalTransactions int      `json:"total_transactions"`
	RiskScore         int      `json:"risk_score"`
	ConfidenceScore   int      `json:"confidence_score"`
	EntityType        string   `json:"entity_type"`
	TotalReceived     float64  `json:"total_received"`
	TotalSent         float64  `json:"total_sent"`
	PatternsDetected  []string `json:"patterns_detected"`
	VictimCount       int      `json:"victim_count"`
	SuspectCount      int      `json:"suspect_count"`
	ThreatFlagged     bool     `json:"threat_flagged"`
	ThreatSources     []string `json:"threat_sources,omitempty"`
}

// Job is a persisted batch analysis run.
type Job struct {
	ID uuid.UUID `gorm:"primary_key" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ChainID    int64      `json:"chain_id"`
	Status     JobStatus  `gorm:"index" json:"status"`
	Total      int        `json:"total"`
	Completed  int        `json:"completed"`
	Failed     int        `json:"failed"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	ResultsJSON string `gorm:"type:text" json:"-"`
}

func (j *Job) TableName() string {
	return "batch_jobs"
}
