package contract

import (
	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(item *ScreeningRecord) error {
	return r.db.Create(item).Error
}

func (r *Repo) GetByAddress(address string) ([]ScreeningRecord, error) {
	var res []ScreeningRecord
	err := r.db.
		Where("lower(address) = lower(?)", address).
		Order("created_at desc").
		Find(&res).
		Error

	return res, err
}
