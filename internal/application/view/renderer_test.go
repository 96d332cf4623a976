package view_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/state"
	"github.com/jhoicas/estoque-ti/internal/application/view"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
	"github.com/jhoicas/estoque-ti/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

var base = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// ── Setup ────────────────────────────────────────────────────────────────────

func newRenderer(t *testing.T, widgets []string, movements []*entity.Movement) *view.Renderer {
	t.Helper()
	s := memory.NewStore()
	s.Seed(
		[]*entity.Product{
			{ID: "p1", Name: "Mouse", Code: "000001", Quantity: 0, MinQuantity: 2, Category: "Periféricos"},
			{ID: "p2", Name: "cabo HDMI", Code: "000002", Quantity: 3, MinQuantity: 5, Category: "Cabos"},
			{ID: "p3", Name: "Álcool isopropílico", Code: "000003", Quantity: 10, MinQuantity: 1},
		},
		movements,
		[]*entity.Branch{{ID: "7", Name: "Posto Itajaí"}, {ID: "2", Name: "Filial Blumenau"}},
		nil,
	)
	cache := state.NewCache(s.Products(), s.Movements(), s.Branches(), s.Shipments(), time.UTC)
	require.NoError(t, cache.Reload(context.Background()))

	r, err := view.NewRenderer(cache, widgets)
	require.NoError(t, err)
	return r
}

func out(productID string, qty int, branch *string, requester, sector string, offset int) *entity.Movement {
	return &entity.Movement{
		ProductID: productID, Type: entity.MovementTypeOut, Quantity: qty, BranchID: branch,
		Requester: requester, Sector: sector, Responsible: "suporte",
		Date: base.Add(time.Duration(offset) * time.Minute),
	}
}

func widgetItems(d dto.DashboardDTO, name string) []dto.RankItem {
	for _, w := range d.Widgets {
		if w.Name == name {
			return w.Items
		}
	}
	return nil
}

// ── Construcción ─────────────────────────────────────────────────────────────

func TestNewRenderer_WidgetDesconocido(t *testing.T) {
	_, err := view.NewRenderer(state.NewCache(nil, nil, nil, nil, nil), []string{"top_moved", "grafico_pizza"})
	assert.Error(t, err)
}

func TestNewRenderer_WidgetsSeleccionados(t *testing.T) {
	r := newRenderer(t, []string{view.WidgetZeroedProducts, view.WidgetTopMoved, view.WidgetZeroedProducts}, nil)
	assert.Equal(t, []string{view.WidgetZeroedProducts, view.WidgetTopMoved}, r.WidgetNames())

	all := newRenderer(t, nil, nil)
	assert.Len(t, all.WidgetNames(), 8)
}

// ── Tablas ───────────────────────────────────────────────────────────────────

func TestProductRows_StatusYFiltro(t *testing.T) {
	r := newRenderer(t, nil, nil)

	rows := r.ProductRows("")
	require.Len(t, rows, 3)
	byID := map[string]dto.ProductRow{}
	for _, row := range rows {
		byID[row.ID] = row
	}
	assert.Equal(t, "Sem Estoque", byID["p1"].StatusLabel)
	assert.Equal(t, "low", byID["p2"].Status)
	assert.Equal(t, "normal", byID["p3"].Status)

	filtered := r.ProductRows("  HDMI ")
	require.Len(t, filtered, 1)
	assert.Equal(t, "p2", filtered[0].ID)
	assert.Len(t, r.ProductRows("perif"), 1)
	assert.Len(t, r.ProductRows("00000"), 3)
}

func TestRecentMovements_Limite(t *testing.T) {
	var movs []*entity.Movement
	for i := 0; i < 25; i++ {
		movs = append(movs, out("p3", 1, nil, "", "", i))
	}
	r := newRenderer(t, nil, movs)

	recent := r.RecentMovements()
	require.Len(t, recent, view.RecentMovementsLimit)
	assert.Equal(t, base.Add(24*time.Minute), recent[0].Date)
	assert.Len(t, r.HistoryRows(), 25)
}

func TestHistoryRows_Filial(t *testing.T) {
	r := newRenderer(t, nil, []*entity.Movement{
		out("p2", 1, strPtr("7"), "", "", 1),
		out("p2", 1, strPtr("99"), "", "", 0),
		out("gone", 1, nil, "", "", -1),
	})
	rows := r.HistoryRows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Posto Itajaí", rows[0].Branch)
	assert.Equal(t, "ID 99", rows[1].Branch)
	assert.Equal(t, "—", rows[2].Branch)
	assert.Equal(t, "—", rows[2].ProductName)
}

// ── Formulario ───────────────────────────────────────────────────────────────

func TestMovementForm(t *testing.T) {
	r := newRenderer(t, nil, nil)
	form := r.MovementForm()

	assert.Contains(t, form.Products, dto.Option{Value: "p2", Label: "cabo HDMI (000002) - Qtd: 3"})

	require.Len(t, form.Destinations, 5)
	assert.Equal(t, "", form.Destinations[0].Value)
	assert.Equal(t, "VAN", form.Destinations[1].Value)
	assert.Equal(t, "AGRICOPEL", form.Destinations[2].Value)
	assert.Equal(t, dto.Option{Value: "2", Label: "Filial Blumenau"}, form.Destinations[3])

	assert.Contains(t, form.Sectors[view.SectorsHeadquarters], "Almoxarifado")
	assert.Contains(t, form.Sectors[view.SectorsBranch], "Conveniência")
}

// ── Dashboard ────────────────────────────────────────────────────────────────

func TestDashboard_Widgets(t *testing.T) {
	r := newRenderer(t, nil, []*entity.Movement{
		out("p2", 4, strPtr("7"), "ana", "TI", 1),
		out("p3", 2, nil, "bruno", "VAN", 2),
		out("p3", 1, strPtr("2"), "ana", "Vendas", 3),
		{ProductID: "p1", Type: entity.MovementTypeIn, Quantity: 9, Date: base},
	})
	d := r.Dashboard()

	assert.Equal(t, 3, d.Stats.TotalProducts)
	assert.Equal(t, 2, d.Stats.LowStock)

	assert.Equal(t, []dto.RankItem{
		{Label: "Mouse", Value: 9}, {Label: "cabo HDMI", Value: 4}, {Label: "Álcool isopropílico", Value: 3},
	}, widgetItems(d, view.WidgetTopMoved))
	assert.Equal(t, []dto.RankItem{
		{Label: "Posto Itajaí", Value: 4}, {Label: "Filial Blumenau", Value: 1},
	}, widgetItems(d, view.WidgetShipmentsByBranch))
	assert.Equal(t, []dto.RankItem{
		{Label: "Outros", Value: 10}, {Label: "Cabos", Value: 3}, {Label: "Periféricos", Value: 0},
	}, widgetItems(d, view.WidgetCategoryBalance))
	assert.Equal(t, []dto.RankItem{{Label: "Mouse", Value: 0}}, widgetItems(d, view.WidgetZeroedProducts))
	assert.Equal(t, []dto.RankItem{
		{Label: "Álcool isopropílico", Value: 10}, {Label: "cabo HDMI", Value: 3}, {Label: "Mouse", Value: 0},
	}, widgetItems(d, view.WidgetSimpleList))
	assert.Equal(t, []dto.RankItem{
		{Label: "ana", Value: 5}, {Label: "bruno", Value: 2},
	}, widgetItems(d, view.WidgetTopRequesters))
	assert.Equal(t, []dto.RankItem{
		{Label: "TI", Value: 4}, {Label: "Vendas", Value: 1},
	}, widgetItems(d, view.WidgetTopSectors))
	assert.Equal(t, widgetItems(d, view.WidgetShipmentsByBranch), widgetItems(d, view.WidgetTopBranches))
}

func TestDashboard_TopCincoYVacio(t *testing.T) {
	var movs []*entity.Movement
	for i := 0; i < 7; i++ {
		movs = append(movs, out("p3", 1, nil, fmt.Sprintf("user%d", i), "", i))
	}
	d := newRenderer(t, []string{view.WidgetTopRequesters, view.WidgetZeroedProducts}, movs).Dashboard()
	assert.Len(t, widgetItems(d, view.WidgetTopRequesters), 5)

	empty := newRenderer(t, []string{view.WidgetTopSectors}, nil).Dashboard()
	require.Len(t, empty.Widgets, 1)
	assert.NotNil(t, empty.Widgets[0].Items)
	assert.Empty(t, empty.Widgets[0].Items)
}
