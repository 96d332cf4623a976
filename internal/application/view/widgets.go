package view

import (
	"github.com/jhoicas/estoque-ti/internal/application/analytics"
	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/state"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
)

// Nombres de widgets aceptados en DASHBOARD_WIDGETS.
const (
	WidgetTopMoved          = "top_moved"
	WidgetShipmentsByBranch = "shipments_by_branch"
	WidgetCategoryBalance   = "category_balance"
	WidgetZeroedProducts    = "zeroed_products"
	WidgetSimpleList        = "simple_list"
	WidgetTopRequesters     = "top_requesters"
	WidgetTopSectors        = "top_sectors"
	WidgetTopBranches       = "top_branches"
)

const rankLimit = 5

type widget struct {
	name  string
	title string
	build func(snap *state.Snapshot) []dto.RankItem
}

var allWidgets = []widget{
	{WidgetTopMoved, "Mais Movimentados", topMoved},
	{WidgetShipmentsByBranch, "Envios por Filial", shipmentsByBranch},
	{WidgetCategoryBalance, "Saldo por Categoria", categoryBalance},
	{WidgetZeroedProducts, "Produtos Zerados", zeroedProducts},
	{WidgetSimpleList, "Lista Simplificada", simpleList},
	{WidgetTopRequesters, "Top Solicitantes", topRequesters},
	{WidgetTopSectors, "Top Setores", topSectors},
	{WidgetTopBranches, "Top Filiais", topBranches},
}

func widgetByName(name string) (widget, bool) {
	for _, w := range allWidgets {
		if w.name == name {
			return w, true
		}
	}
	return widget{}, false
}

// topMoved volumen total (entradas + saídas) por nome de produto.
func topMoved(snap *state.Snapshot) []dto.RankItem {
	t := analytics.NewTally()
	for _, m := range snap.Movements {
		t.Add(m.ProductName(), m.Quantity)
	}
	return t.Top(rankLimit)
}

// shipmentsByBranch saídas con filial, agrupadas por nome de filial.
func shipmentsByBranch(snap *state.Snapshot) []dto.RankItem {
	t := analytics.NewTally()
	for _, m := range snap.Movements {
		if m.Type == entity.MovementTypeOut && m.BranchID != nil {
			t.Add(snap.BranchName(m.BranchID), m.Quantity)
		}
	}
	return t.Top(rankLimit)
}

// categoryBalance suma de quantidades actuales por categoria.
func categoryBalance(snap *state.Snapshot) []dto.RankItem {
	t := analytics.NewTally()
	for _, p := range snap.Products {
		cat := p.Category
		if cat == "" {
			cat = "Outros"
		}
		t.Add(cat, p.Quantity)
	}
	return t.Top(rankLimit)
}

func zeroedProducts(snap *state.Snapshot) []dto.RankItem {
	var items []dto.RankItem
	for _, p := range snap.Products {
		if p.Quantity == 0 {
			items = append(items, dto.RankItem{Label: p.Name, Value: 0})
		}
	}
	return items
}

// simpleList todos los produtos por nome (colación pt-BR) con su quantidade.
func simpleList(snap *state.Snapshot) []dto.RankItem {
	items := make([]dto.RankItem, 0, len(snap.Products))
	for _, p := range snap.Products {
		items = append(items, dto.RankItem{Label: p.Name, Value: p.Quantity})
	}
	analytics.SortNames(items, func(i dto.RankItem) string { return i.Label })
	return items
}

func topRequesters(snap *state.Snapshot) []dto.RankItem {
	t := analytics.NewTally()
	for _, m := range snap.Movements {
		if m.Type == entity.MovementTypeOut && m.Requester != "" {
			t.Add(m.Requester, m.Quantity)
		}
	}
	return t.Top(rankLimit)
}

// topSectors excluye el setor VAN (estoque móvel).
func topSectors(snap *state.Snapshot) []dto.RankItem {
	t := analytics.NewTally()
	for _, m := range snap.Movements {
		if m.Type == entity.MovementTypeOut && m.Sector != "" && m.Sector != entity.DestinationVanTag {
			t.Add(m.Sector, m.Quantity)
		}
	}
	return t.Top(rankLimit)
}

func topBranches(snap *state.Snapshot) []dto.RankItem {
	t := analytics.NewTally()
	for _, m := range snap.Movements {
		if m.Type != entity.MovementTypeOut || m.BranchID == nil {
			continue
		}
		if name := snap.BranchName(m.BranchID); name != "—" {
			t.Add(name, m.Quantity)
		}
	}
	return t.Top(rankLimit)
}
