package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dataset-sql-assistant/internal/models"
)

type DatasetRepository struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Upsert records a loaded dataset, replacing the registry entry when the same
// table has been reloaded.
func (r *DatasetRepository) Upsert(dataset *models.Dataset) error {
	dataset.LoadedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "table_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"source_file", "row_count", "loaded_at"}),
	}).Create(dataset).Error
}

func (r *DatasetRepository) List() ([]models.Dataset, error) {
	var datasets []models.Dataset
	err := r.db.Order("table_name").Find(&datasets).Error
	return datasets, err
}

func (r *DatasetRepository) GetByTableName(name string) (*models.Dataset, error) {
	var dataset models.Dataset
	err := r.db.Where("table_name = ?", name).First(&dataset).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dataset, nil
}

// DeleteMissing drops registry rows whose tables are no longer present, e.g.
// after a CSV file was removed and the directory reloaded.
func (r *DatasetRepository) DeleteMissing(existing []string) error {
	if len(existing) == 0 {
		return r.db.Where("1 = 1").Delete(&models.Dataset{}).Error
	}
	return r.db.Where("table_name NOT IN ?", existing).Delete(&models.Dataset{}).Error
}
