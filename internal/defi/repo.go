package defi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is one persisted DeFi analysis run.
type Record struct {
	ID uuid.UUID `gorm:"primary_key" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Address      string `gorm:"index" json:"address"`
	Protocols    string `json:"protocols"`
	TotalSwaps   int    `json:"total_swaps"`
	ActivityJSON string `gorm:"type:text" json:"-"`
}

func (r *Record) TableName() string {
	return "defi_activities"
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(record *Record) error {
	return r.db.Create(record).Error
}

func (r *Repo) GetByAddress(address string, limit int) ([]Record, error) {
	var records []Record
	err := r.db.
		Where("lower(address) = lower(?)", address).
		Order("created_at desc").
		Limit(limit).
		Find(&records).
		Error

	return records, err
}

// buildRecord flattens an activity report for storage.
func buildRecord(activity *Activity) (*Record, error) {
	raw, err := json.Marshal(activity)
	if err != nil {
		return nil, fmt.Errorf("encode activity: %w", err)
	}

	return &Record{
		ID:           uuid.New(),
		Address:      activity.Address,
		Protocols:    strings.Join(activity.Summary.ProtocolsUsed, ","),
		TotalSwaps:   activity.Summary.TotalSwaps,
		ActivityJSON: string(raw),
	}, nil
}
