package dto

import "time"

// StatsDTO indicadores del topo da consola.
type StatsDTO struct {
	TotalProducts  int       `json:"total_products"`
	LowStock       int       `json:"low_stock"`
	TodayMovements int       `json:"today_movements"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// RankItem par etiqueta/valor de un ranking.
type RankItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// WidgetDTO un widget del dashboard.
type WidgetDTO struct {
	Name  string     `json:"name"`
	Title string     `json:"title"`
	Items []RankItem `json:"items"`
}

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	Stats   StatsDTO    `json:"stats"`
	Widgets []WidgetDTO `json:"widgets"`
}
