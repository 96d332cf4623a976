package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-ti/internal/application/analytics"
	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/infrastructure/export"
)

func stockTable() dto.ReportTable {
	return analytics.StockReport([]*entity.Product{
		{Name: "Mouse", Code: "000001", Quantity: 0, MinQuantity: 2},
		{Name: "Teclado; ABNT2", Code: "000002", Quantity: 8, MinQuantity: 2},
	})
}

// ── XLSX ─────────────────────────────────────────────────────────────────────

func TestXLSXExporter_Export(t *testing.T) {
	e := export.NewXLSXExporter()
	assert.Equal(t, "xlsx", e.Format())

	data, err := e.Export(stockTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	sheets := f.GetSheetMap()
	require.Len(t, sheets, 1)
	assert.Equal(t, analytics.ReportStock, sheets[1])

	assert.Equal(t, "Produto", f.GetCellValue("estoque", "A1"))
	assert.Equal(t, "Status", f.GetCellValue("estoque", "E1"))
	assert.Equal(t, "Mouse", f.GetCellValue("estoque", "A2"))
	assert.Equal(t, "Sem Estoque", f.GetCellValue("estoque", "E2"))
	assert.Equal(t, "Teclado; ABNT2", f.GetCellValue("estoque", "A3"))

	// resumen tras una fila en blanco
	assert.Equal(t, "Estoque normal", f.GetCellValue("estoque", "A5"))
	assert.Equal(t, "1", f.GetCellValue("estoque", "B5"))
	assert.Equal(t, "Sem estoque", f.GetCellValue("estoque", "A7"))
}

func TestXLSXExporter_WideTable(t *testing.T) {
	headers := make([]string, 28)
	for i := range headers {
		headers[i] = "h"
	}
	headers[25] = "z"
	headers[27] = "ultima"
	data, err := export.NewXLSXExporter().Export(dto.ReportTable{Type: "largo", Headers: headers})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "h", f.GetCellValue("largo", "A1"))
	assert.Equal(t, "z", f.GetCellValue("largo", "Z1"))
	assert.Equal(t, "ultima", f.GetCellValue("largo", "AB1"))
}

// ── CSV ──────────────────────────────────────────────────────────────────────

func TestCSVExporter_Export(t *testing.T) {
	e := export.NewCSVExporter()
	assert.Equal(t, "csv", e.Format())
	assert.Contains(t, e.ContentType(), "text/csv")

	data, err := e.Export(stockTable())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\uFEFF")))

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\uFEFF")))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Produto", "Código", "Quantidade", "Mínimo", "Status"}, records[0])
	assert.Equal(t, []string{"Teclado; ABNT2", "000002", "8", "2", "Normal"}, records[2])
	last := records[len(records)-1]
	assert.Equal(t, []string{"Sem estoque", "1"}, last)
}

func TestCSVExporter_NoSummary(t *testing.T) {
	data, err := export.NewCSVExporter().Export(dto.ReportTable{
		Headers: []string{"Categoria", "Saldo"},
		Rows:    [][]string{{"Cabos", "-2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "\uFEFFCategoria;Saldo\nCabos;-2\n", string(data))
}
