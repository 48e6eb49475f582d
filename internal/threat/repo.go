package threat

import (
	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(item *Indicator) error {
	return r.db.Create(item).Error
}

func (r *Repo) GetAll() ([]Indicator, error) {
	var res []Indicator
	err := r.db.Find(&res).Error

	return res, err
}

func (r *Repo) GetByAddress(address string) ([]Indicator, error) {
	var res []Indicator
	err := r.db.
		Where("lower(address) = lower(?)", address).
		Find(&res).
		Error

	return res, err
}
