package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"sabores-backend/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Result: contagem de registros carregados em uma execução
type Result struct {
	ProductsLoaded int `json:"products_loaded"`
	UnitsLoaded    int `json:"units_loaded"`
	WaitersLoaded  int `json:"waiters_loaded"`
	SalesLoaded    int `json:"sales_loaded"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// LoadFile carrega a planilha do caminho informado. Com truncate ativo,
// as quatro tabelas são esvaziadas antes dos inserts (carga full-replace).
func (s *Service) LoadFile(path string, truncate bool) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("arquivo não encontrado: %s: %w", path, os.ErrNotExist)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("não foi possível abrir a planilha %s: %v", path, err)
	}
	defer f.Close()

	return s.load(f, truncate)
}

// LoadReader: mesma carga a partir de um stream (upload HTTP)
func (s *Service) LoadReader(r io.Reader, truncate bool) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("não foi possível ler a planilha: %v", err)
	}
	defer f.Close()

	return s.load(f, truncate)
}

func (s *Service) load(f *excelize.File, truncate bool) (*Result, error) {
	productSheet, err := readSheet(f, SheetProducts)
	if err != nil {
		return nil, err
	}
	if err := productSheet.requireColumns("Produto_ID", "Produto", "Custo_Unitario", "Preco_Venda"); err != nil {
		return nil, err
	}

	unitSheet, err := readSheet(f, SheetUnits)
	if err != nil {
		return nil, err
	}
	if err := unitSheet.requireColumns("Unidade_ID", "Nome_Unidade"); err != nil {
		return nil, err
	}

	salesSheet, err := readSheet(f, SheetSales)
	if err != nil {
		return nil, err
	}
	if err := salesSheet.requireColumns("ID_Pedido", "Data_Pedido", "Unidade_ID", "Garcom", "Produto_ID", "Quantidade", "Valor_Unitario", "Valor_Total"); err != nil {
		return nil, err
	}

	var result *Result

	// carga inteira em uma transação: qualquer falha desfaz tudo
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if truncate {
			if err := clearTables(tx); err != nil {
				return err
			}
		}

		products, err := insertProducts(tx, productSheet)
		if err != nil {
			return err
		}
		units, err := insertUnits(tx, unitSheet)
		if err != nil {
			return err
		}
		waiters, err := insertWaiters(tx, salesSheet)
		if err != nil {
			return err
		}
		salesLoaded, err := insertSales(tx, salesSheet, products, units, waiters)
		if err != nil {
			return err
		}

		result = &Result{
			ProductsLoaded: len(products),
			UnitsLoaded:    len(units),
			WaitersLoaded:  len(waiters),
			SalesLoaded:    salesLoaded,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// clearTables esvazia a tabela fato antes das dimensões (ordem de
// integridade referencial). Delete físico: linhas com soft-delete também
// precisam sair para não colidir com os índices únicos.
func clearTables(tx *gorm.DB) error {
	tables := []interface{}{
		&models.Sale{},
		&models.Product{},
		&models.Unit{},
		&models.Waiter{},
	}
	for _, table := range tables {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("erro ao limpar tabelas: %v", err)
		}
	}
	return nil
}

func insertProducts(tx *gorm.DB, sh *sheet) (map[string]*models.Product, error) {
	products := make(map[string]*models.Product)
	for i, row := range sh.rows {
		if isEmptyRow(row) {
			continue
		}

		cost, err := parseMoney(sh.cell(row, "Custo_Unitario"))
		if err != nil {
			return nil, fmt.Errorf("linha %d de Produtos: Custo_Unitario inválido: %v", i+2, err)
		}
		price, err := parseMoney(sh.cell(row, "Preco_Venda"))
		if err != nil {
			return nil, fmt.Errorf("linha %d de Produtos: Preco_Venda inválido: %v", i+2, err)
		}

		code := sh.cell(row, "Produto_ID")
		product := &models.Product{
			Code:     code,
			Name:     sh.cell(row, "Produto"),
			Category: optString(sh.cell(row, "Categoria")),
			CostUnit: cost,
			Price:    price,
			Supplier: optString(sh.cell(row, "Fornecedor")),
		}
		if err := tx.Create(product).Error; err != nil {
			return nil, fmt.Errorf("erro ao inserir produto %s: %v", code, err)
		}
		products[code] = product
	}
	return products, nil
}

func insertUnits(tx *gorm.DB, sh *sheet) (map[string]*models.Unit, error) {
	units := make(map[string]*models.Unit)
	for i, row := range sh.rows {
		if isEmptyRow(row) {
			continue
		}

		capacity, err := parseOptInt(sh.cell(row, "Capacidade_Mesas"))
		if err != nil {
			return nil, fmt.Errorf("linha %d de Unidades: Capacidade_Mesas inválida: %v", i+2, err)
		}

		code := sh.cell(row, "Unidade_ID")
		unit := &models.Unit{
			Code:           code,
			Name:           sh.cell(row, "Nome_Unidade"),
			City:           optString(sh.cell(row, "Cidade")),
			State:          optString(sh.cell(row, "Estado")),
			CapacityTables: capacity,
			Manager:        optString(sh.cell(row, "Gerente")),
		}
		if err := tx.Create(unit).Error; err != nil {
			return nil, fmt.Errorf("erro ao inserir unidade %s: %v", code, err)
		}
		units[code] = unit
	}
	return units, nil
}

// insertWaiters cria um registro por nome distinto de garçom na aba Vendas,
// na ordem da primeira aparição.
func insertWaiters(tx *gorm.DB, sh *sheet) (map[string]*models.Waiter, error) {
	waiters := make(map[string]*models.Waiter)
	for _, row := range sh.rows {
		if isEmptyRow(row) {
			continue
		}
		name := sh.cell(row, "Garcom")
		if name == "" {
			continue
		}
		if _, ok := waiters[name]; ok {
			continue
		}

		waiter := &models.Waiter{Name: name}
		if err := tx.Create(waiter).Error; err != nil {
			return nil, fmt.Errorf("erro ao inserir garçom %s: %v", name, err)
		}
		waiters[name] = waiter
	}
	return waiters, nil
}

func insertSales(
	tx *gorm.DB,
	sh *sheet,
	products map[string]*models.Product,
	units map[string]*models.Unit,
	waiters map[string]*models.Waiter,
) (int, error) {
	count := 0
	for i, row := range sh.rows {
		if isEmptyRow(row) {
			continue
		}
		line := i + 2

		productCode := sh.cell(row, "Produto_ID")
		product, ok := products[productCode]
		if !ok {
			return 0, fmt.Errorf("linha %d de Vendas: produto %q não existe na aba Produtos", line, productCode)
		}
		unitCode := sh.cell(row, "Unidade_ID")
		unit, ok := units[unitCode]
		if !ok {
			return 0, fmt.Errorf("linha %d de Vendas: unidade %q não existe na aba Unidades", line, unitCode)
		}
		waiterName := sh.cell(row, "Garcom")
		waiter, ok := waiters[waiterName]
		if !ok {
			return 0, fmt.Errorf("linha %d de Vendas: garçom %q não encontrado", line, waiterName)
		}

		orderDate, err := parseDate(sh.cell(row, "Data_Pedido"))
		if err != nil {
			return 0, fmt.Errorf("linha %d de Vendas: %v", line, err)
		}
		quantity, err := strconv.Atoi(sh.cell(row, "Quantidade"))
		if err != nil {
			return 0, fmt.Errorf("linha %d de Vendas: Quantidade inválida: %v", line, err)
		}
		unitPrice, err := parseMoney(sh.cell(row, "Valor_Unitario"))
		if err != nil {
			return 0, fmt.Errorf("linha %d de Vendas: Valor_Unitario inválido: %v", line, err)
		}
		totalValue, err := parseMoney(sh.cell(row, "Valor_Total"))
		if err != nil {
			return 0, fmt.Errorf("linha %d de Vendas: Valor_Total inválido: %v", line, err)
		}

		marginValue := (product.Price - product.CostUnit) * float64(quantity)
		marginPct := 0.0
		if totalValue != 0 {
			marginPct = marginValue / totalValue
		}

		sale := &models.Sale{
			OrderCode:   sh.cell(row, "ID_Pedido"),
			OrderDate:   orderDate,
			MonthYear:   time.Date(orderDate.Year(), orderDate.Month(), 1, 0, 0, 0, 0, time.UTC),
			UnitID:      unit.ID,
			WaiterID:    waiter.ID,
			ProductID:   product.ID,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			TotalValue:  totalValue,
			MarginValue: marginValue,
			MarginPct:   marginPct,
		}
		if err := tx.Create(sale).Error; err != nil {
			return 0, fmt.Errorf("erro ao inserir venda %s: %v", sale.OrderCode, err)
		}
		count++
	}
	return count, nil
}
