package contract

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PatternMatch is one suspicious construct found in contract source.
type PatternMatch struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
	Risk        string `json:"risk"`
}

// RugPullIndicators summarizes owner-controlled drain vectors.
type RugPullIndicators struct {
	RiskScore     int            `json:"risk_score"`
	PatternsFound []PatternMatch `json:"patterns_found"`
	Severity      string         `json:"severity"`
	Confidence    float64        `json:"confidence"`
}

// HoneypotIndicators summarizes buy-only trap signals.
type HoneypotIndicators struct {
	IsHoneypot bool           `json:"is_honeypot"`
	RiskScore  int            `json:"risk_score"`
	Patterns   []PatternMatch `json:"patterns"`
	Confidence float64        `json:"confidence"`
}

// LiquidityLock reports whether liquidity appears locked.
type LiquidityLock struct {
	HasLock      bool     `json:"has_liquidity_lock"`
	LockDuration *int64   `json:"lock_duration"`
	LockPatterns []string `json:"lock_patterns"`
	Risk         string   `json:"risk"`
}

// Report is the full screening verdict for one contract.
type Report struct {
	Address         string `json:"address"`
	Name            string `json:"name,omitempty"`
	IsVerified      bool   `json:"is_verified"`
	CompilerVersion string `json:"compiler_version,omitempty"`
	Error           string `json:"error,omitempty"`

	RugPull       *RugPullIndicators  `json:"rug_pull_analysis,omitempty"`
	Honeypot      *HoneypotIndicators `json:"honeypot_analysis,omitempty"`
	LiquidityLock *LiquidityLock      `json:"liquidity_lock_analysis,omitempty"`

	OverallRiskScore float64   `json:"overall_risk_score"`
	OverallRiskLevel string    `json:"overall_risk_level"`
	Recommendation   string    `json:"recommendation,omitempty"`
	AnalyzedAt       time.Time `json:"analyzed_at"`
}

// ScreeningRecord is a persisted contract screening.
type ScreeningRecord struct {
	ID uuid.UUID `gorm:"primary_key"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Address    string `gorm:"index"`
	ChainID    int64
	IsVerified bool
	RiskScore  float64
	RiskLevel  string

	ReportJSON string `gorm:"type:text"`
}

func (r *ScreeningRecord) TableName() string {
	return "contract_screenings"
}
