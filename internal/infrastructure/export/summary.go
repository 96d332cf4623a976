package export

import "github.com/jhoicas/estoque-ti/internal/application/analytics"

// Orden y etiquetas del resumen del relatório de estoque.
var summaryOrder = []string{analytics.SummaryNormal, analytics.SummaryLow, analytics.SummaryOut}

var summaryLabels = map[string]string{
	analytics.SummaryNormal: "Estoque normal",
	analytics.SummaryLow:    "Estoque baixo",
	analytics.SummaryOut:    "Sem estoque",
}

// SummaryLabel etiqueta legible de una clave del resumen.
func SummaryLabel(key string) string {
	if l, ok := summaryLabels[key]; ok {
		return l
	}
	return key
}

// SummaryKeys claves presentes en el resumen, en orden de presentación.
func SummaryKeys(summary map[string]int) []string {
	keys := make([]string, 0, len(summary))
	for _, k := range summaryOrder {
		if _, ok := summary[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}
