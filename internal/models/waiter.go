package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Waiter: o nome funciona como chave natural (dois garçons homônimos colidem)
type Waiter struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:120;not null;uniqueIndex"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Sales []Sale
}

func (w *Waiter) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
