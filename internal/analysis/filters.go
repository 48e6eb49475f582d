package analysis

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

type AddressFilter struct {
	Address string
}

func (f AddressFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lower(address) = lower(?)", f.Address)
}

type ChainFilter struct {
	ChainID int64
}

func (f ChainFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chain_id = ?", f.ChainID)
}

type OrderByCreatedFilter struct {
}

func (f OrderByCreatedFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc")
}
