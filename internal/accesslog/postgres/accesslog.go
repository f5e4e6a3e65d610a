package accesslog

import (
	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal/accesslog"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Insert(entry accesslog.Entry) error {
	return r.db.Create(&entry).Error
}

func (r *Repository) List(limit, offset int) ([]accesslog.Entry, int64, error) {
	var total int64
	if err := r.db.Model(&accesslog.Entry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []accesslog.Entry
	err := r.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
