package metrics

import (
	"fmt"
	"time"

	"sabores-backend/internal/models"

	"gorm.io/gorm"
)

// Rótulos usados quando a dimensão não tem o atributo preenchido
const (
	NoCategory = "Sem categoria"
	NotDefined = "ND"
)

type SummaryMetrics struct {
	RevenueTotal float64 `json:"revenue_total"`
	MarginTotal  float64 `json:"margin_total"`
	MarginPct    float64 `json:"margin_pct"`
	TicketMedio  float64 `json:"ticket_medio"`
	Pedidos      int     `json:"pedidos"`
}

type UnitMetrics struct {
	UnitCode  string  `json:"unit_code"`
	UnitName  string  `json:"unit_name"`
	Revenue   float64 `json:"revenue"`
	Margin    float64 `json:"margin"`
	MarginPct float64 `json:"margin_pct"`
	Orders    int     `json:"orders"`
}

type CategoryMetrics struct {
	Category  string  `json:"category"`
	Revenue   float64 `json:"revenue"`
	Margin    float64 `json:"margin"`
	MarginPct float64 `json:"margin_pct"`
	Orders    int     `json:"orders"`
}

type MonthlyMetrics struct {
	Month     string  `json:"month"`
	Revenue   float64 `json:"revenue"`
	Margin    float64 `json:"margin"`
	MarginPct float64 `json:"margin_pct"`
	Orders    int     `json:"orders"`
}

type WaiterMetrics struct {
	Waiter    string  `json:"waiter"`
	Revenue   float64 `json:"revenue"`
	Margin    float64 `json:"margin"`
	MarginPct float64 `json:"margin_pct"`
	Orders    int     `json:"orders"`
}

type GeographyMetrics struct {
	State   string  `json:"state"`
	City    string  `json:"city"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// Service: camada somente leitura sobre a tabela fato
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// pct devolve margem/receita com proteção contra divisão por zero
func pct(margin, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return margin / revenue
}

func (s *Service) Summary() (*SummaryMetrics, error) {
	var row struct {
		Revenue float64 `gorm:"column:revenue"`
		Margin  float64 `gorm:"column:margin"`
		Orders  int     `gorm:"column:orders"`
	}

	err := s.db.Model(&models.Sale{}).
		Select("COALESCE(SUM(total_value), 0) AS revenue, COALESCE(SUM(margin_value), 0) AS margin, COUNT(id) AS orders").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular resumo: %v", err)
	}

	ticket := 0.0
	if row.Orders > 0 {
		ticket = row.Revenue / float64(row.Orders)
	}

	return &SummaryMetrics{
		RevenueTotal: row.Revenue,
		MarginTotal:  row.Margin,
		MarginPct:    pct(row.Margin, row.Revenue),
		TicketMedio:  ticket,
		Pedidos:      row.Orders,
	}, nil
}

func (s *Service) ByUnit() ([]UnitMetrics, error) {
	var rows []struct {
		UnitCode string  `gorm:"column:unit_code"`
		UnitName string  `gorm:"column:unit_name"`
		Revenue  float64 `gorm:"column:revenue"`
		Margin   float64 `gorm:"column:margin"`
		Orders   int     `gorm:"column:orders"`
	}

	err := s.db.Model(&models.Sale{}).
		Select("units.code AS unit_code, units.name AS unit_name, SUM(sales.total_value) AS revenue, SUM(sales.margin_value) AS margin, COUNT(sales.id) AS orders").
		Joins("JOIN units ON units.id = sales.unit_id").
		Group("units.code, units.name").
		Order("SUM(sales.total_value) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar por unidade: %v", err)
	}

	out := make([]UnitMetrics, 0, len(rows))
	for _, r := range rows {
		out = append(out, UnitMetrics{
			UnitCode:  r.UnitCode,
			UnitName:  r.UnitName,
			Revenue:   r.Revenue,
			Margin:    r.Margin,
			MarginPct: pct(r.Margin, r.Revenue),
			Orders:    r.Orders,
		})
	}
	return out, nil
}

func (s *Service) ByCategory() ([]CategoryMetrics, error) {
	var rows []struct {
		Category *string `gorm:"column:category"`
		Revenue  float64 `gorm:"column:revenue"`
		Margin   float64 `gorm:"column:margin"`
		Orders   int     `gorm:"column:orders"`
	}

	err := s.db.Model(&models.Sale{}).
		Select("products.category AS category, SUM(sales.total_value) AS revenue, SUM(sales.margin_value) AS margin, COUNT(sales.id) AS orders").
		Joins("JOIN products ON products.id = sales.product_id").
		Group("products.category").
		Order("SUM(sales.total_value) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar por categoria: %v", err)
	}

	out := make([]CategoryMetrics, 0, len(rows))
	for _, r := range rows {
		category := NoCategory
		if r.Category != nil && *r.Category != "" {
			category = *r.Category
		}
		out = append(out, CategoryMetrics{
			Category:  category,
			Revenue:   r.Revenue,
			Margin:    r.Margin,
			MarginPct: pct(r.Margin, r.Revenue),
			Orders:    r.Orders,
		})
	}
	return out, nil
}

func (s *Service) Monthly() ([]MonthlyMetrics, error) {
	var rows []struct {
		MonthYear time.Time `gorm:"column:month_year"`
		Revenue   float64   `gorm:"column:revenue"`
		Margin    float64   `gorm:"column:margin"`
		Orders    int       `gorm:"column:orders"`
	}

	err := s.db.Model(&models.Sale{}).
		Select("month_year, SUM(total_value) AS revenue, SUM(margin_value) AS margin, COUNT(id) AS orders").
		Group("month_year").
		Order("month_year ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar por mês: %v", err)
	}

	out := make([]MonthlyMetrics, 0, len(rows))
	for _, r := range rows {
		out = append(out, MonthlyMetrics{
			Month:     r.MonthYear.Format("2006-01-02"),
			Revenue:   r.Revenue,
			Margin:    r.Margin,
			MarginPct: pct(r.Margin, r.Revenue),
			Orders:    r.Orders,
		})
	}
	return out, nil
}

func (s *Service) ByWaiter() ([]WaiterMetrics, error) {
	var rows []struct {
		Waiter  string  `gorm:"column:waiter"`
		Revenue float64 `gorm:"column:revenue"`
		Margin  float64 `gorm:"column:margin"`
		Orders  int     `gorm:"column:orders"`
	}

	err := s.db.Model(&models.Sale{}).
		Select("waiters.name AS waiter, SUM(sales.total_value) AS revenue, SUM(sales.margin_value) AS margin, COUNT(sales.id) AS orders").
		Joins("JOIN waiters ON waiters.id = sales.waiter_id").
		Group("waiters.name").
		Order("SUM(sales.total_value) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar por garçom: %v", err)
	}

	out := make([]WaiterMetrics, 0, len(rows))
	for _, r := range rows {
		out = append(out, WaiterMetrics{
			Waiter:    r.Waiter,
			Revenue:   r.Revenue,
			Margin:    r.Margin,
			MarginPct: pct(r.Margin, r.Revenue),
			Orders:    r.Orders,
		})
	}
	return out, nil
}

func (s *Service) ByGeography() ([]GeographyMetrics, error) {
	var rows []struct {
		State   *string `gorm:"column:state"`
		City    *string `gorm:"column:city"`
		Revenue float64 `gorm:"column:revenue"`
		Orders  int     `gorm:"column:orders"`
	}

	err := s.db.Model(&models.Sale{}).
		Select("units.state AS state, units.city AS city, SUM(sales.total_value) AS revenue, COUNT(sales.id) AS orders").
		Joins("JOIN units ON units.id = sales.unit_id").
		Group("units.state, units.city").
		Order("SUM(sales.total_value) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao agregar por geografia: %v", err)
	}

	out := make([]GeographyMetrics, 0, len(rows))
	for _, r := range rows {
		state, city := NotDefined, NotDefined
		if r.State != nil && *r.State != "" {
			state = *r.State
		}
		if r.City != nil && *r.City != "" {
			city = *r.City
		}
		out = append(out, GeographyMetrics{
			State:   state,
			City:    city,
			Revenue: r.Revenue,
			Orders:  r.Orders,
		})
	}
	return out, nil
}
