package casefile

import (
	"gorm.io/gorm"
)

type Filter interface {
	Apply(*gorm.DB) *gorm.DB
}

type PageFilter struct {
	Offset int
	Limit  int
}

func (f PageFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(f.Offset).Limit(f.Limit)
}

type StatusFilter struct {
	Status Status
}

func (f StatusFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", f.Status)
}

type InvestigatorFilter struct {
	Investigator string
}

func (f InvestigatorFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("investigator = ?", f.Investigator)
}

type OrderByCreatedFilter struct {
}

func (f OrderByCreatedFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc")
}
