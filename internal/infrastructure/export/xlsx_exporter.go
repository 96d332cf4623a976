// Package export serializa los relatórios renderizados a planilla (xlsx) y texto (csv).
package export

import (
	"fmt"

	"github.com/360EntSecGroup-Skylar/excelize"

	"github.com/jhoicas/estoque-ti/internal/application/analytics"
	"github.com/jhoicas/estoque-ti/internal/application/dto"
)

const defaultSheet = "Sheet1"

var _ analytics.Exporter = (*XLSXExporter)(nil)

// XLSXExporter escribe una hoja por relatório: cabeceras en la fila 1, datos desde la 2
// y, si el relatório trae resumen, las contagens después de una fila en blanco.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (e *XLSXExporter) Format() string { return "xlsx" }

func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export genera el libro en memoria.
func (e *XLSXExporter) Export(table dto.ReportTable) ([]byte, error) {
	f := excelize.NewFile()
	sheet := sheetName(table)
	f.SetSheetName(defaultSheet, sheet)

	for i, h := range table.Headers {
		f.SetCellValue(sheet, cellName(i, 1), h)
	}
	if len(table.Headers) > 0 {
		style, err := f.NewStyle(`{"font":{"bold":true},"fill":{"type":"pattern","color":["#DCE6F1"],"pattern":1}}`)
		if err != nil {
			return nil, fmt.Errorf("xlsx: estilo de cabeçalho: %w", err)
		}
		last := len(table.Headers) - 1
		f.SetCellStyle(sheet, cellName(0, 1), cellName(last, 1), style)
		f.SetColWidth(sheet, excelize.ToAlphaString(0), excelize.ToAlphaString(last), 18)
	}

	for r, row := range table.Rows {
		for c, v := range row {
			f.SetCellValue(sheet, cellName(c, r+2), v)
		}
	}

	if len(table.Summary) > 0 {
		line := len(table.Rows) + 3
		for _, key := range SummaryKeys(table.Summary) {
			f.SetCellValue(sheet, cellName(0, line), SummaryLabel(key))
			f.SetCellValue(sheet, cellName(1, line), table.Summary[key])
			line++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: gerar planilha: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName usa el tipo del relatório; Excel limita el nombre a 31 caracteres.
func sheetName(table dto.ReportTable) string {
	name := table.Type
	if name == "" {
		name = "relatorio"
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", excelize.ToAlphaString(col), row)
}
