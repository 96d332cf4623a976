package analytics

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
)

// Tally acumula valores por etiqueta conservando el orden de primera aparición.
type Tally struct {
	order  []string
	values map[string]int
}

// NewTally crea un acumulador vacío.
func NewTally() *Tally {
	return &Tally{values: make(map[string]int)}
}

// Add suma n a la etiqueta.
func (t *Tally) Add(label string, n int) {
	if _, ok := t.values[label]; !ok {
		t.order = append(t.order, label)
	}
	t.values[label] += n
}

// Len cantidad de etiquetas distintas.
func (t *Tally) Len() int { return len(t.order) }

// Top devuelve las n etiquetas de mayor valor (n <= 0 = todas). Empates: primera aparición.
func (t *Tally) Top(n int) []dto.RankItem {
	items := make([]dto.RankItem, 0, len(t.order))
	for _, label := range t.order {
		items = append(items, dto.RankItem{Label: label, Value: t.values[label]})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Value > items[j].Value })
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

// SortNames ordena nombres con la colación pt-BR (acentos y mayúsculas no alteran el orden alfabético).
func SortNames[T any](items []T, name func(T) string) {
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(items[i]), name(items[j])) < 0
	})
}
