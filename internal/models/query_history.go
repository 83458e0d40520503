package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QueryHistory records every question the assistant handled, regardless of
// which channel it arrived on.
type QueryHistory struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Channel         string    `gorm:"type:text;not null;index" json:"channel"` // api | whatsapp | cli
	Question        string    `gorm:"type:text;not null" json:"question"`
	GeneratedSQL    string    `gorm:"type:text" json:"generated_sql,omitempty"`
	Answer          string    `gorm:"type:text" json:"answer,omitempty"`
	ExecutedAt      time.Time `gorm:"autoCreateTime;index" json:"executed_at"`
	Success         *bool     `json:"success,omitempty"`
	ExecutionTimeMs *int      `json:"execution_time_ms,omitempty"`
}

func (QueryHistory) TableName() string {
	return "assistant_query_history"
}

func (q *QueryHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.ExecutedAt.IsZero() {
		q.ExecutedAt = time.Now()
	}
	return
}
