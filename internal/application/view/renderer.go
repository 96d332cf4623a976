// Package view arma los view-models de la consola a partir del snapshot cargado.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/estoque-ti/internal/application/analytics"
	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/state"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/domain/inventory"
)

// RecentMovementsLimit filas de la tabla de movimentações recientes.
const RecentMovementsLimit = 20

// SnapshotSource provee el snapshot cargado (state.Cache).
type SnapshotSource interface {
	Snapshot() *state.Snapshot
}

// Renderer produce filas, opciones de formulario y el dashboard.
type Renderer struct {
	snapshots SnapshotSource
	widgets   []widget
}

// NewRenderer valida los widgets habilitados; vacío habilita todos en el orden por defecto.
func NewRenderer(snapshots SnapshotSource, widgetNames []string) (*Renderer, error) {
	r := &Renderer{snapshots: snapshots}
	if len(widgetNames) == 0 {
		r.widgets = append(r.widgets, allWidgets...)
		return r, nil
	}
	seen := make(map[string]bool, len(widgetNames))
	for _, name := range widgetNames {
		w, ok := widgetByName(name)
		if !ok {
			return nil, fmt.Errorf("view: widget desconhecido %q", name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		r.widgets = append(r.widgets, w)
	}
	return r, nil
}

// WidgetNames nombres de los widgets habilitados, en orden.
func (r *Renderer) WidgetNames() []string {
	names := make([]string, len(r.widgets))
	for i, w := range r.widgets {
		names[i] = w.name
	}
	return names
}

// Stats indicadores del snapshot actual.
func (r *Renderer) Stats() dto.StatsDTO {
	snap := r.snapshots.Snapshot()
	return dto.StatsDTO{
		TotalProducts:  snap.Stats.TotalProducts,
		LowStock:       snap.Stats.LowStock,
		TodayMovements: snap.Stats.TodayMovements,
		LoadedAt:       snap.LoadedAt,
	}
}

// Dashboard indicadores más los widgets habilitados.
func (r *Renderer) Dashboard() dto.DashboardDTO {
	snap := r.snapshots.Snapshot()
	out := dto.DashboardDTO{Stats: r.Stats(), Widgets: make([]dto.WidgetDTO, 0, len(r.widgets))}
	for _, w := range r.widgets {
		items := w.build(snap)
		if items == nil {
			items = []dto.RankItem{}
		}
		out.Widgets = append(out.Widgets, dto.WidgetDTO{Name: w.name, Title: w.title, Items: items})
	}
	return out
}

// ProductRows tabla de produtos; query filtra por nome, código o categoria sin distinguir mayúsculas.
func (r *Renderer) ProductRows(query string) []dto.ProductRow {
	snap := r.snapshots.Snapshot()
	q := strings.ToLower(strings.TrimSpace(query))
	rows := make([]dto.ProductRow, 0, len(snap.Products))
	for _, p := range snap.Products {
		if q != "" && !matches(q, p.Name, p.Code, p.Category) {
			continue
		}
		status := inventory.StockStatus(p.Quantity, p.MinQuantity)
		rows = append(rows, dto.ProductRow{
			ID:          p.ID,
			Code:        p.Code,
			Name:        p.Name,
			Category:    p.Category,
			Quantity:    p.Quantity,
			MinQuantity: p.MinQuantity,
			Status:      status,
			StatusLabel: inventory.StatusLabel(status),
		})
	}
	return rows
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// RecentMovements primeras movimentações del snapshot (ya vienen más recientes primero).
func (r *Renderer) RecentMovements() []dto.MovementRow {
	snap := r.snapshots.Snapshot()
	movs := snap.Movements
	if len(movs) > RecentMovementsLimit {
		movs = movs[:RecentMovementsLimit]
	}
	return movementRows(snap, movs)
}

// HistoryRows todas las movimentações.
func (r *Renderer) HistoryRows() []dto.MovementRow {
	snap := r.snapshots.Snapshot()
	return movementRows(snap, snap.Movements)
}

func movementRows(snap *state.Snapshot, movs []*entity.Movement) []dto.MovementRow {
	rows := make([]dto.MovementRow, 0, len(movs))
	for _, m := range movs {
		rows = append(rows, dto.MovementRow{
			ID:          m.ID,
			Date:        m.Date,
			ProductName: m.ProductName(),
			Type:        m.Type,
			Quantity:    m.Quantity,
			Responsible: m.Responsible,
			Requester:   m.Requester,
			Ticket:      m.Ticket,
			Sector:      m.Sector,
			Branch:      snap.BranchName(m.BranchID),
			Notes:       m.Notes,
		})
	}
	return rows
}

// ProductOptions opciones del select de produto: "<nome> (<código>) - Qtd: <q>".
func (r *Renderer) ProductOptions() []dto.Option {
	snap := r.snapshots.Snapshot()
	opts := make([]dto.Option, 0, len(snap.Products))
	for _, p := range snap.Products {
		opts = append(opts, dto.Option{
			Value: p.ID,
			Label: p.Name + " (" + p.Code + ") - Qtd: " + strconv.Itoa(p.Quantity),
		})
	}
	return opts
}

// DestinationOptions local, Van, Matriz y luego las filiais ordenadas por nome.
func (r *Renderer) DestinationOptions() []dto.Option {
	snap := r.snapshots.Snapshot()
	opts := make([]dto.Option, 0, len(snap.Branches)+3)
	opts = append(opts,
		dto.Option{Value: "", Label: "Estoque TI (movimentação local)"},
		dto.Option{Value: entity.DestinationVanTag, Label: "Van (Estoque Móvel)"},
		dto.Option{Value: entity.DestinationHeadquartersTag, Label: "Agricopel (Matriz)"},
	)
	for _, b := range snap.Branches {
		label := b.Name
		if label == "" {
			label = "Filial " + b.ID
		}
		opts = append(opts, dto.Option{Value: b.ID, Label: label})
	}
	return opts
}

// Claves del mapa de setores del formulario.
const (
	SectorsHeadquarters = "matriz"
	SectorsBranch       = "filial"
)

// MovementForm metadatos del formulario de movimentação.
func (r *Renderer) MovementForm() dto.MovementFormResponse {
	return dto.MovementFormResponse{
		Products:     r.ProductOptions(),
		Destinations: r.DestinationOptions(),
		Sectors: map[string][]string{
			SectorsHeadquarters: inventory.SectorOptions(entity.DestinationHeadquarters),
			SectorsBranch:       inventory.SectorOptions(entity.DestinationBranch),
		},
	}
}

// ReportTypes tipos de relatório disponibles para el selector.
func (r *Renderer) ReportTypes() []string {
	return append([]string(nil), analytics.ReportTypes...)
}
