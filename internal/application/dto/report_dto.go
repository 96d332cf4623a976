package dto

// ReportTable tabla renderizada de un relatório.
type ReportTable struct {
	Type    string     `json:"type"`
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	// Summary contadores del relatório de estoque (normal, baixo, sem estoque).
	Summary map[string]int `json:"summary,omitempty"`
}
