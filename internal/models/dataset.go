package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dataset is one ingested CSV file, mapped 1:1 to a table in the datasets store.
// Name holds the dataset's table name; the field cannot be called TableName
// because gorm reserves that identifier for the table-name override below.
type Dataset struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"column:table_name;type:text;not null;uniqueIndex" json:"table_name"`
	SourceFile string    `gorm:"type:text;not null" json:"source_file"`
	RowCount   int64     `gorm:"not null" json:"row_count"`
	LoadedAt   time.Time `gorm:"autoUpdateTime" json:"loaded_at"`
}

func (Dataset) TableName() string {
	return "assistant_datasets"
}

func (d *Dataset) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
