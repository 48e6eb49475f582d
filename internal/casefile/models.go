package casefile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusClosed   Status = "closed"
	StatusArchived Status = "archived"
)

// AddressTag classifies an address's role inside an investigation.
type AddressTag string

const (
	TagSuspect      AddressTag = "suspect"
	TagVictim       AddressTag = "victim"
	TagIntermediary AddressTag = "intermediary"
	TagExchange     AddressTag = "exchange"
)

// Case is one investigation.
type Case struct {
	ID uuid.UUID `gorm:"primary_key" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string `json:"name"`
	Description  string `json:"description"`
	Investigator string `json:"investigator"`
	Jurisdiction string `json:"jurisdiction"`
	CaseType     string `json:"case_type"` // fraud, theft, money_laundering
	Status       Status `json:"status"`

	Addresses []CaseAddress `gorm:"foreignKey:CaseID" json:"addresses,omitempty"`
	Notes     []Note        `gorm:"foreignKey:CaseID" json:"notes,omitempty"`
	Findings  []Finding     `gorm:"foreignKey:CaseID" json:"findings,omitempty"`
}

func (c *Case) TableName() string {
	return "cases"
}

// CaseAddress links an address to a case with investigation metadata.
type CaseAddress struct {
	ID uuid.UUID `gorm:"primary_key" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID    uuid.UUID  `gorm:"index" json:"case_id"`
	Address   string     `gorm:"index" json:"address"`
	Tag       AddressTag `json:"tag"`
	Notes     string     `json:"notes"`
	RiskLevel int        `json:"risk_level"`
	Status    string     `json:"status"`
}

func (a *CaseAddress) TableName() string {
	return "case_addresses"
}

// Note is a timestamped investigation note, optionally tied to an address.
type Note struct {
	ID uuid.UUID `gorm:"primary_key" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID  uuid.UUID `gorm:"index" json:"case_id"`
	Content string    `gorm:"type:text" json:"content"`
	Address string    `json:"address,omitempty"`
}

func (n *Note) TableName() string {
	return "case_notes"
}

// Finding is a key conclusion recorded during the investigation.
type Finding struct {
	ID uuid.UUID `gorm:"primary_key" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID  uuid.UUID `gorm:"index" json:"case_id"`
	Finding string    `gorm:"type:text" json:"finding"`
}

func (f *Finding) TableName() string {
	return "case_findings"
}
