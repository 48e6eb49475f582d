package casefile

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

func (r *Repo) Create(item *Case) error {
	return r.db.Create(item).Error
}

func (r *Repo) Update(item *Case) error {
	return r.db.Save(item).Error
}

func (r *Repo) GetByID(id uuid.UUID) (Case, error) {
	var res Case
	err := r.db.
		Preload("Addresses").
		Preload("Notes").
		Preload("Findings").
		Where(&Case{ID: id}).
		First(&res).
		Error

	return res, err
}

func (r *Repo) GetByFilters(filters []Filter) ([]Case, error) {
	db := r.db.Model(&Case{})
	for _, f := range filters {
		db = f.Apply(db)
	}

	var res []Case
	err := db.Find(&res).Error

	return res, err
}

func (r *Repo) AddAddress(item *CaseAddress) error {
	return r.db.Create(item).Error
}

func (r *Repo) GetAddress(caseID uuid.UUID, address string) (CaseAddress, error) {
	var res CaseAddress
	err := r.db.
		Where("case_id = ? and lower(address) = lower(?)", caseID, address).
		First(&res).
		Error

	return res, err
}

func (r *Repo) UpdateAddress(item *CaseAddress) error {
	return r.db.Save(item).Error
}

func (r *Repo) AddNote(item *Note) error {
	return r.db.Create(item).Error
}

func (r *Repo) AddFinding(item *Finding) error {
	return r.db.Create(item).Error
}
