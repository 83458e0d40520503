package repositories

import (
	"gorm.io/gorm"

	"dataset-sql-assistant/internal/models"
)

type QueryHistoryRepository struct {
	db *gorm.DB
}

func NewQueryHistoryRepository(db *gorm.DB) *QueryHistoryRepository {
	return &QueryHistoryRepository{db: db}
}

func (r *QueryHistoryRepository) Create(entry *models.QueryHistory) error {
	return r.db.Create(entry).Error
}

func (r *QueryHistoryRepository) Recent(limit int) ([]models.QueryHistory, error) {
	if limit <= 0 {
		limit = 100
	}

	var entries []models.QueryHistory
	err := r.db.Order("executed_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
