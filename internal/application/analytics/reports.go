package analytics

import (
	"strconv"
	"time"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/state"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/domain/inventory"
)

// Tipos de relatório.
const (
	ReportStock     = "estoque"
	ReportMovements = "movimentacoes"
	ReportCategory  = "categorias"
	ReportHistory   = "historico"
)

// ReportTypes en el orden del selector de la consola.
var ReportTypes = []string{ReportStock, ReportMovements, ReportCategory, ReportHistory}

const (
	topMovedLimit   = 10
	otherCategory   = "Outros"
	historyDateFmt  = "02/01/2006 15:04:05"
	missingCellText = "-"
)

// Claves del resumen del relatório de estoque.
const (
	SummaryNormal = "normal"
	SummaryLow    = "baixo"
	SummaryOut    = "sem_estoque"
)

// StockReport cuenta produtos normales, en/bajo el mínimo (incluye zerados) y zerados,
// y lista todos con su estado.
func StockReport(products []*entity.Product) dto.ReportTable {
	t := dto.ReportTable{
		Type:    ReportStock,
		Title:   "Todos os Produtos",
		Headers: []string{"Produto", "Código", "Quantidade", "Mínimo", "Status"},
		Rows:    make([][]string, 0, len(products)),
		Summary: map[string]int{SummaryNormal: 0, SummaryLow: 0, SummaryOut: 0},
	}
	for _, p := range products {
		if inventory.IsLowStock(p.Quantity, p.MinQuantity) {
			t.Summary[SummaryLow]++
		} else {
			t.Summary[SummaryNormal]++
		}
		if p.Quantity == 0 {
			t.Summary[SummaryOut]++
		}
		t.Rows = append(t.Rows, []string{
			p.Name, p.Code, itoa(p.Quantity), itoa(p.MinQuantity),
			inventory.StatusLabel(inventory.StockStatus(p.Quantity, p.MinQuantity)),
		})
	}
	return t
}

type productVolume struct {
	name, code     string
	in, out, total int
}

// MovementReport top 10 produtos por volumen total (entradas + saídas). Empates: primera aparición.
func MovementReport(movements []*entity.Movement) dto.ReportTable {
	var order []string
	volumes := make(map[string]*productVolume)
	for _, m := range movements {
		v, ok := volumes[m.ProductID]
		if !ok {
			v = &productVolume{name: m.ProductName(), code: missingCellText}
			if m.Product != nil && m.Product.Code != "" {
				v.code = m.Product.Code
			}
			volumes[m.ProductID] = v
			order = append(order, m.ProductID)
		}
		if m.Type == entity.MovementTypeIn {
			v.in += m.Quantity
		} else {
			v.out += m.Quantity
		}
		v.total += m.Quantity
	}

	tally := NewTally()
	for _, id := range order {
		tally.Add(id, volumes[id].total)
	}
	t := dto.ReportTable{
		Type:    ReportMovements,
		Title:   "Top 10 Produtos Mais Movimentados",
		Headers: []string{"Produto", "Código", "Entradas", "Saídas", "Total"},
	}
	for _, item := range tally.Top(topMovedLimit) {
		v := volumes[item.Label]
		t.Rows = append(t.Rows, []string{v.name, v.code, itoa(v.in), itoa(v.out), itoa(v.total)})
	}
	return t
}

type categoryTotals struct {
	name    string
	in, out int
}

// CategoryReport entradas, saídas y saldo por categoría ("Outros" si el produto no tiene).
func CategoryReport(movements []*entity.Movement) dto.ReportTable {
	index := make(map[string]*categoryTotals)
	var cats []*categoryTotals
	for _, m := range movements {
		name := otherCategory
		if m.Product != nil && m.Product.Category != "" {
			name = m.Product.Category
		}
		c, ok := index[name]
		if !ok {
			c = &categoryTotals{name: name}
			index[name] = c
			cats = append(cats, c)
		}
		if m.Type == entity.MovementTypeIn {
			c.in += m.Quantity
		} else {
			c.out += m.Quantity
		}
	}
	SortNames(cats, func(c *categoryTotals) string { return c.name })

	t := dto.ReportTable{
		Type:    ReportCategory,
		Title:   "Movimentações por Categoria",
		Headers: []string{"Categoria", "Entradas", "Saídas", "Saldo"},
	}
	for _, c := range cats {
		t.Rows = append(t.Rows, []string{c.name, itoa(c.in), itoa(c.out), itoa(c.in - c.out)})
	}
	return t
}

// HistoryReport todas las movimentações en el orden del snapshot (más recientes primero).
func HistoryReport(snap *state.Snapshot, loc *time.Location) dto.ReportTable {
	if loc == nil {
		loc = time.UTC
	}
	t := dto.ReportTable{
		Type:  ReportHistory,
		Title: "Histórico",
		Headers: []string{
			"Produto", "Tipo", "Quantidade", "Responsável", "Solicitante",
			"Chamado", "Filial", "Setor", "Data", "Observações",
		},
		Rows: make([][]string, 0, len(snap.Movements)),
	}
	for _, m := range snap.Movements {
		t.Rows = append(t.Rows, []string{
			m.ProductName(),
			TypeLabel(m.Type),
			itoa(m.Quantity),
			orMissing(m.Responsible),
			orMissing(m.Requester),
			orMissing(m.Ticket),
			snap.BranchName(m.BranchID),
			orMissing(m.Sector),
			m.Date.In(loc).Format(historyDateFmt),
			orMissing(m.Notes),
		})
	}
	return t
}

// TypeLabel etiqueta del tipo de movimentação.
func TypeLabel(t string) string {
	if t == entity.MovementTypeIn {
		return "Entrada"
	}
	return "Saída"
}

func orMissing(s string) string {
	if s == "" {
		return missingCellText
	}
	return s
}

func itoa(n int) string { return strconv.Itoa(n) }
