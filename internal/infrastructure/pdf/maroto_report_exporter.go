// Package pdf imprime los relatórios del estoque con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del relatório      │  Nome do sistema       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por cabecera, filas alternadas          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: contagens (solo relatório de estoque)              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/estoque-ti/internal/application/analytics"
	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/infrastructure/export"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

const gridSize = 12

// ── Exporter ──────────────────────────────────────────────────────────────────

var _ analytics.Exporter = (*MarotoReportExporter)(nil)

// MarotoReportExporter implementa analytics.Exporter en PDF.
type MarotoReportExporter struct {
	author string
}

// NewMarotoReportExporter construye el exportador; author aparece en el header y en los metadatos.
func NewMarotoReportExporter(author string) *MarotoReportExporter {
	return &MarotoReportExporter{author: author}
}

func (g *MarotoReportExporter) Format() string      { return "pdf" }
func (g *MarotoReportExporter) ContentType() string { return "application/pdf" }

// Export genera el PDF y devuelve sus bytes.
func (g *MarotoReportExporter) Export(table dto.ReportTable) ([]byte, error) {
	fontSize := 8.0
	if len(table.Headers) > 6 {
		fontSize = 6.5
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: fontSize}).
		WithTitle(table.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(table.Title, g.author))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	widths := columnWidths(len(table.Headers))
	if len(widths) > 0 {
		m.AddRows(tableHeaderRow(table.Headers, widths, fontSize))
		m.AddRows(tableRows(table.Rows, widths, fontSize)...)
	}
	if len(table.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(gridSize).Add(
			text.New("Nenhum registro.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}

	if keys := export.SummaryKeys(table.Summary); len(keys) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(summaryRows(keys, table.Summary)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, author string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New(author, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(headers []string, widths []int, size float64) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(widths[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: size, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(rows [][]string, widths []int, size float64) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for i, values := range rows {
		cols := make([]core.Col, 0, len(widths))
		for c := range widths {
			v := ""
			if c < len(values) {
				v = values[c]
			}
			cols = append(cols, col.New(widths[c]).Add(text.New(v, props.Text{
				Size: size, Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func summaryRows(keys []string, summary map[string]int) []core.Row {
	rows := make([]core.Row, 0, len(keys)+1)
	rows = append(rows, row.New(7).Add(col.New(gridSize).Add(
		text.New("RESUMO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	)))
	for _, k := range keys {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(export.SummaryLabel(k)+":", props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(summary[k]), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte las 12 columnas de la grilla; el sobrante va a las primeras
// (el nombre del produto siempre es la primera). Más de 12 cabeceras se truncan.
func columnWidths(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridSize {
		n = gridSize
	}
	widths := make([]int, n)
	base, rest := gridSize/n, gridSize%n
	for i := range widths {
		widths[i] = base
		if i < rest {
			widths[i]++
		}
	}
	return widths
}
