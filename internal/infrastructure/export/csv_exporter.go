package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/jhoicas/estoque-ti/internal/application/analytics"
	"github.com/jhoicas/estoque-ti/internal/application/dto"
)

// utf8BOM hace que Excel abra el archivo con acentos correctos.
const utf8BOM = "\uFEFF"

var _ analytics.Exporter = (*CSVExporter)(nil)

// CSVExporter escribe el relatório separado por ';' (Excel pt-BR usa ',' como decimal).
type CSVExporter struct {
	comma rune
}

// NewCSVExporter construye el exportador con separador ';'.
func NewCSVExporter() *CSVExporter { return &CSVExporter{comma: ';'} }

func (e *CSVExporter) Format() string      { return "csv" }
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export genera el CSV con cabecera; el resumen va al final tras una línea vacía.
func (e *CSVExporter) Export(table dto.ReportTable) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	cw := csv.NewWriter(&buf)
	cw.Comma = e.comma
	w := gocsv.NewSafeCSVWriter(cw)

	if err := w.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("csv: cabeçalho: %w", err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv: linha: %w", err)
		}
	}
	if keys := SummaryKeys(table.Summary); len(keys) > 0 {
		if err := w.Write([]string{""}); err != nil {
			return nil, fmt.Errorf("csv: resumo: %w", err)
		}
		for _, k := range keys {
			if err := w.Write([]string{SummaryLabel(k), strconv.Itoa(table.Summary[k])}); err != nil {
				return nil, fmt.Errorf("csv: resumo: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: gravar: %w", err)
	}
	return buf.Bytes(), nil
}
