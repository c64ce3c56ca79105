package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code     string    `gorm:"size:10;not null;uniqueIndex"` // Produto_ID da planilha
	Name     string    `gorm:"size:120;not null"`
	Category *string   `gorm:"size:60"`
	CostUnit float64   `gorm:"type:numeric(12,2);not null"`
	Price    float64   `gorm:"type:numeric(12,2);not null"`
	Supplier *string   `gorm:"size:120"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Sales []Sale
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
