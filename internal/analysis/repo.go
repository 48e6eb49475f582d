package analysis

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(item *Record) error {
	return r.db.Create(item).Error
}

func (r *Repo) GetByID(id uuid.UUID) (Record, error) {
	var res Record
	err := r.db.
		Where(&Record{ID: id}).
		First(&res).
		Error

	return res, err
}

func (r *Repo) GetLatestByAddress(address string) (Record, error) {
	var res Record
	err := r.db.
		Where("lower(address) = lower(?)", address).
		Order("created_at desc").
		First(&res).
		Error

	return res, err
}

func (r *Repo) GetByFilters(filters []Filter) ([]Record, error) {
	db := r.db.Model(&Record{})
	for _, f := range filters {
		db = f.Apply(db)
	}

	var res []Record
	err := db.Find(&res).Error

	return res, err
}
