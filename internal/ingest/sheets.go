package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Nomes das abas esperadas na planilha de vendas
const (
	SheetProducts = "Produtos"
	SheetUnits    = "Unidades"
	SheetSales    = "Vendas"
)

// sheet: aba já lida, com o cabeçalho mapeado por nome de coluna
type sheet struct {
	name   string
	header map[string]int
	rows   [][]string
}

func readSheet(f *excelize.File, name string) (*sheet, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("aba %q não encontrada na planilha: %v", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("aba %q está vazia", name)
	}

	header := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		header[strings.TrimSpace(col)] = i
	}

	return &sheet{name: name, header: header, rows: rows[1:]}, nil
}

func (s *sheet) requireColumns(cols ...string) error {
	for _, col := range cols {
		if _, ok := s.header[col]; !ok {
			return fmt.Errorf("aba %q sem a coluna obrigatória %q", s.name, col)
		}
	}
	return nil
}

// cell devolve o valor já com trim; linhas curtas contam como célula vazia
func (s *sheet) cell(row []string, col string) string {
	idx, ok := s.header[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// optString: células em branco viram NULL
func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func parseMoney(v string) (float64, error) {
	// planilhas brasileiras às vezes usam vírgula decimal
	v = strings.ReplaceAll(v, ",", ".")
	return strconv.ParseFloat(v, 64)
}

func parseOptInt(v string) (*int, error) {
	if v == "" || strings.EqualFold(v, "nan") {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01-02-06",
	"1/2/06 15:04",
}

// parseDate aceita datas como texto nos formatos usuais ou como
// número serial do Excel.
func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %q", v)
}
