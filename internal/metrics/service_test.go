package metrics

import (
	"path/filepath"
	"testing"
	"time"

	"sabores-backend/internal/database"
	"sabores-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedSales popula o mesmo conjunto da planilha de referência:
// 10 vendas em 3 unidades, 4 garçons, 3 categorias, jan/fev 2025.
// Receita total 526, margem total 328.
func seedSales(t *testing.T, db *gorm.DB) {
	t.Helper()

	type productSeed struct {
		code, name, category string
		cost, price          float64
	}
	productSeeds := []productSeed{
		{"P01", "Feijoada Completa", "Pratos", 20, 50},
		{"P02", "Suco de Laranja", "Bebidas", 1.25, 5},
		{"P03", "Picanha Grelhada", "Pratos", 45, 110},
		{"P04", "Moqueca de Peixe", "Pratos", 16.5, 36.5},
		{"P05", "Churrasco Misto", "Pratos", 38.5, 93.5},
		{"P06", "Batata Frita", "Porções", 7, 23},
		{"P07", "Caipirinha", "Bebidas", 12.5, 49.5},
		{"P08", "Isca de Frango", "Porções", 16, 36.5},
		{"P09", "Cerveja Artesanal", "Bebidas", 8.5, 30.5},
		{"P10", "Pão de Alho", "Porções", 2, 3.5},
	}
	products := make(map[string]*models.Product, len(productSeeds))
	for _, p := range productSeeds {
		product := &models.Product{
			Code:     p.code,
			Name:     p.name,
			Category: strPtr(p.category),
			CostUnit: p.cost,
			Price:    p.price,
		}
		require.NoError(t, db.Create(product).Error)
		products[p.code] = product
	}

	type unitSeed struct {
		code, name, city, state string
	}
	unitSeeds := []unitSeed{
		{"U01", "Sabores Centro", "São Paulo", "SP"},
		{"U02", "Sabores Moinhos", "Porto Alegre", "RS"},
		{"U03", "Sabores Cambuí", "Campinas", "SP"},
		{"U04", "Sabores Express", "", ""},
		{"U05", "Sabores Barra", "Rio de Janeiro", "RJ"},
	}
	units := make(map[string]*models.Unit, len(unitSeeds))
	for _, u := range unitSeeds {
		unit := &models.Unit{
			Code:  u.code,
			Name:  u.name,
			City:  optString(u.city),
			State: optString(u.state),
		}
		require.NoError(t, db.Create(unit).Error)
		units[u.code] = unit
	}

	waiters := make(map[string]*models.Waiter)
	for _, name := range []string{"Marcos Lima", "João Silva", "Ana Costa", "Carlos Souza"} {
		waiter := &models.Waiter{Name: name}
		require.NoError(t, db.Create(waiter).Error)
		waiters[name] = waiter
	}

	type saleSeed struct {
		order   string
		date    time.Time
		unit    string
		waiter  string
		product string
		qty     int
		total   float64
	}
	saleSeeds := []saleSeed{
		{"V001", day(2025, 1, 5), "U01", "Marcos Lima", "P01", 2, 100},
		{"V002", day(2025, 1, 8), "U01", "João Silva", "P02", 4, 20},
		{"V003", day(2025, 2, 3), "U01", "Ana Costa", "P03", 1, 110},
		{"V004", day(2025, 2, 10), "U03", "Marcos Lima", "P04", 1, 36.5},
		{"V005", day(2025, 1, 12), "U03", "João Silva", "P05", 1, 93.5},
		{"V006", day(2025, 2, 14), "U03", "Carlos Souza", "P06", 2, 46},
		{"V007", day(2025, 1, 15), "U02", "Marcos Lima", "P07", 1, 49.5},
		{"V008", day(2025, 1, 18), "U02", "João Silva", "P08", 1, 36.5},
		{"V009", day(2025, 2, 20), "U02", "Ana Costa", "P09", 1, 30.5},
		{"V010", day(2025, 1, 22), "U02", "Ana Costa", "P10", 1, 3.5},
	}
	for _, s := range saleSeeds {
		product := products[s.product]
		margin := (product.Price - product.CostUnit) * float64(s.qty)
		sale := &models.Sale{
			OrderCode:   s.order,
			OrderDate:   s.date,
			MonthYear:   day(s.date.Year(), s.date.Month(), 1),
			UnitID:      units[s.unit].ID,
			WaiterID:    waiters[s.waiter].ID,
			ProductID:   product.ID,
			Quantity:    s.qty,
			UnitPrice:   s.total / float64(s.qty),
			TotalValue:  s.total,
			MarginValue: margin,
			MarginPct:   margin / s.total,
		}
		require.NoError(t, db.Create(sale).Error)
	}
}

func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func TestSummary(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewService(db)

	summary, err := svc.Summary()
	require.NoError(t, err)

	assert.InDelta(t, 526.0, summary.RevenueTotal, 1e-6)
	assert.InDelta(t, 328.0, summary.MarginTotal, 1e-6)
	assert.InDelta(t, 0.623574, summary.MarginPct, 1e-4)
	assert.InDelta(t, 52.6, summary.TicketMedio, 1e-6)
	assert.Equal(t, 10, summary.Pedidos)
}

func TestSummaryEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	summary, err := svc.Summary()
	require.NoError(t, err)

	assert.Zero(t, summary.RevenueTotal)
	assert.Zero(t, summary.MarginTotal)
	assert.Zero(t, summary.MarginPct)
	assert.Zero(t, summary.TicketMedio)
	assert.Zero(t, summary.Pedidos)
}

func TestByUnit(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewService(db)

	units, err := svc.ByUnit()
	require.NoError(t, err)
	require.Len(t, units, 3)

	codes := make([]string, 0, len(units))
	for _, u := range units {
		codes = append(codes, u.UnitCode)
	}
	assert.Equal(t, []string{"U01", "U03", "U02"}, codes)

	top := units[0]
	assert.Equal(t, "Sabores Centro", top.UnitName)
	assert.InDelta(t, 230.0, top.Revenue, 1e-6)
	assert.InDelta(t, 140.0, top.Margin, 1e-6)
	assert.InDelta(t, 0.608696, top.MarginPct, 1e-4)
	assert.Equal(t, 3, top.Orders)
}

func TestByCategory(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewService(db)

	categories, err := svc.ByCategory()
	require.NoError(t, err)
	require.Len(t, categories, 3)

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Category)
	}
	assert.Equal(t, []string{"Pratos", "Bebidas", "Porções"}, names)

	bebidas := categories[1]
	assert.InDelta(t, 100.0, bebidas.Revenue, 1e-6)
	assert.InDelta(t, 0.74, bebidas.MarginPct, 1e-3)
}

func TestMonthly(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewService(db)

	monthly, err := svc.Monthly()
	require.NoError(t, err)
	require.Len(t, monthly, 2)

	assert.Equal(t, "2025-01-01", monthly[0].Month)
	assert.Equal(t, "2025-02-01", monthly[1].Month)
	assert.InDelta(t, 303.0, monthly[0].Revenue, 1e-6)
	assert.InDelta(t, 223.0, monthly[1].Revenue, 1e-6)
	assert.Equal(t, 6, monthly[0].Orders)
	assert.Equal(t, 4, monthly[1].Orders)
}

func TestByWaiter(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewService(db)

	waiters, err := svc.ByWaiter()
	require.NoError(t, err)
	require.Len(t, waiters, 4)

	assert.Equal(t, "Marcos Lima", waiters[0].Waiter)
	assert.Equal(t, "João Silva", waiters[1].Waiter)
	assert.InDelta(t, 186.0, waiters[0].Revenue, 1e-6)
	assert.InDelta(t, 46.0, waiters[len(waiters)-1].Revenue, 1e-6)
}

func TestByGeography(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewService(db)

	geo, err := svc.ByGeography()
	require.NoError(t, err)
	require.Len(t, geo, 3)

	assert.Equal(t, "São Paulo", geo[0].City)
	assert.InDelta(t, 230.0, geo[0].Revenue, 1e-6)

	states := make(map[string]bool)
	for _, g := range geo {
		states[g.State] = true
	}
	assert.Equal(t, map[string]bool{"SP": true, "RS": true}, states)

	// ordem decrescente por receita
	for i := 1; i < len(geo); i++ {
		assert.GreaterOrEqual(t, geo[i-1].Revenue, geo[i].Revenue)
	}
}

func TestMarginPctNeverNaN(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	// venda degenerada com total zero
	product := &models.Product{Code: "P01", Name: "Cortesia", CostUnit: 0, Price: 0}
	require.NoError(t, db.Create(product).Error)
	unit := &models.Unit{Code: "U01", Name: "Sabores Centro"}
	require.NoError(t, db.Create(unit).Error)
	waiter := &models.Waiter{Name: "Marcos Lima"}
	require.NoError(t, db.Create(waiter).Error)
	sale := &models.Sale{
		OrderCode: "V001",
		OrderDate: day(2025, 1, 5),
		MonthYear: day(2025, 1, 1),
		UnitID:    unit.ID,
		WaiterID:  waiter.ID,
		ProductID: product.ID,
		Quantity:  1,
	}
	require.NoError(t, db.Create(sale).Error)

	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.Zero(t, summary.MarginPct)

	units, err := svc.ByUnit()
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Zero(t, units[0].MarginPct)
	assert.False(t, units[0].MarginPct != units[0].MarginPct) // nunca NaN
}

func TestPlaceholderLabels(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	// produto sem categoria e unidade sem cidade/estado
	product := &models.Product{Code: "P01", Name: "Prato do Dia", CostUnit: 10, Price: 25}
	require.NoError(t, db.Create(product).Error)
	unit := &models.Unit{Code: "U01", Name: "Sabores Kiosk"}
	require.NoError(t, db.Create(unit).Error)
	waiter := &models.Waiter{Name: "Ana Costa"}
	require.NoError(t, db.Create(waiter).Error)
	sale := &models.Sale{
		OrderCode:   "V001",
		OrderDate:   day(2025, 3, 2),
		MonthYear:   day(2025, 3, 1),
		UnitID:      unit.ID,
		WaiterID:    waiter.ID,
		ProductID:   product.ID,
		Quantity:    1,
		UnitPrice:   25,
		TotalValue:  25,
		MarginValue: 15,
		MarginPct:   0.6,
	}
	require.NoError(t, db.Create(sale).Error)

	categories, err := svc.ByCategory()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, NoCategory, categories[0].Category)

	geo, err := svc.ByGeography()
	require.NoError(t, err)
	require.Len(t, geo, 1)
	assert.Equal(t, NotDefined, geo[0].State)
	assert.Equal(t, NotDefined, geo[0].City)
}

func TestAggregatesAreConsistent(t *testing.T) {
	db := newTestDB(t)
	seedSales(t, db)
	svc := NewService(db)

	summary, err := svc.Summary()
	require.NoError(t, err)

	units, err := svc.ByUnit()
	require.NoError(t, err)
	categories, err := svc.ByCategory()
	require.NoError(t, err)
	monthly, err := svc.Monthly()
	require.NoError(t, err)
	waiters, err := svc.ByWaiter()
	require.NoError(t, err)
	geo, err := svc.ByGeography()
	require.NoError(t, err)

	var unitSum, categorySum, monthlySum, waiterSum, geoSum float64
	for _, u := range units {
		unitSum += u.Revenue
	}
	for _, c := range categories {
		categorySum += c.Revenue
	}
	for _, m := range monthly {
		monthlySum += m.Revenue
	}
	for _, w := range waiters {
		waiterSum += w.Revenue
	}
	for _, g := range geo {
		geoSum += g.Revenue
	}

	assert.InDelta(t, summary.RevenueTotal, unitSum, 1e-6)
	assert.InDelta(t, summary.RevenueTotal, categorySum, 1e-6)
	assert.InDelta(t, summary.RevenueTotal, monthlySum, 1e-6)
	assert.InDelta(t, summary.RevenueTotal, waiterSum, 1e-6)
	assert.InDelta(t, summary.RevenueTotal, geoSum, 1e-6)
}
