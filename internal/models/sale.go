package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale: tabela fato, uma linha por pedido da planilha Vendas
type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderCode string    `gorm:"size:20;not null;uniqueIndex"` // ID_Pedido
	OrderDate time.Time `gorm:"type:date;not null"`
	MonthYear time.Time `gorm:"type:date;not null;index"` // primeiro dia do mês, para agrupamento mensal

	UnitID    uuid.UUID `gorm:"type:uuid;not null"`
	Unit      Unit
	WaiterID  uuid.UUID `gorm:"type:uuid;not null"`
	Waiter    Waiter
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Product   Product

	Quantity    int     `gorm:"not null"`
	UnitPrice   float64 `gorm:"type:numeric(12,2);not null"`
	TotalValue  float64 `gorm:"type:numeric(12,2);not null"`
	MarginValue float64 `gorm:"type:numeric(12,2);not null"` // (preço - custo) * quantidade
	MarginPct   float64 `gorm:"not null"`                    // margem / total, 0 quando total é 0

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
