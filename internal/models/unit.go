package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit: loja/unidade da rede (Unidade_ID da planilha)
type Unit struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code           string    `gorm:"size:10;not null;uniqueIndex"`
	Name           string    `gorm:"size:120;not null"`
	City           *string   `gorm:"size:80"`
	State          *string   `gorm:"size:4"`
	CapacityTables *int
	Manager        *string `gorm:"size:120"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Sales []Sale
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
