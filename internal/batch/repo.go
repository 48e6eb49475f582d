package batch

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

func (r *Repo) Create(item *Job) error {
	return r.db.Create(item).Error
}

func (r *Repo) Update(item *Job) error {
	return r.db.Save(item).Error
}

func (r *Repo) GetByID(id uuid.UUID) (Job, error) {
	var res Job
	err := r.db.
		Where(&Job{ID: id}).
		First(&res).
		Error

	return res, err
}

func (r *Repo) GetRecent(limit int) ([]Job, error) {
	var res []Job
	err := r.db.
		Order("created_at desc").
		Limit(limit).
		Find(&res).
		Error

	return res, err
}
