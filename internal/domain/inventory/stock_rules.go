// Package inventory contiene las reglas puras del estoque: estado por umbral,
// aplicación de movimentações, código secuencial y decisión de notificación.
package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/estoque-ti/internal/domain"
	"github.com/jhoicas/estoque-ti/internal/domain/entity"
)

// Estados de estoque mostrados en la tabla de productos.
const (
	StatusOut    = "out"
	StatusLow    = "low"
	StatusNormal = "normal"
)

// Etiquetas de estado enviadas en la plantilla de email.
const (
	AlertZeroed = "zerado"
	AlertLow    = "baixo"
)

// CodeWidth ancho del código de producto ("000042").
const CodeWidth = 6

// StockStatus: out si q == 0, low si 0 < q <= mínimo, normal en otro caso.
func StockStatus(quantity, minimum int) string {
	switch {
	case quantity == 0:
		return StatusOut
	case quantity <= minimum:
		return StatusLow
	default:
		return StatusNormal
	}
}

// StatusLabel etiqueta en português del estado.
func StatusLabel(status string) string {
	switch status {
	case StatusOut:
		return "Sem Estoque"
	case StatusLow:
		return "Baixo"
	default:
		return "Normal"
	}
}

// IsLowStock cuenta para el indicador "estoque baixo" del dashboard (incluye zerados).
func IsLowStock(quantity, minimum int) bool {
	return quantity <= minimum
}

// ApplyMovement devuelve la cantidad resultante de aplicar la movimentação.
// Nunca deja el producto en negativo: en ese caso devuelve ErrInsufficientStock.
func ApplyMovement(movementType string, current, quantity int) (int, error) {
	if quantity <= 0 || !entity.IsValidMovementType(movementType) {
		return current, domain.ErrInvalidInput
	}
	delta := quantity
	if movementType == entity.MovementTypeOut {
		delta = -quantity
	}
	next := current + delta
	if next < 0 {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}

// NextProductCode incrementa el mayor código existente ("" si no hay productos).
func NextProductCode(last string) (string, error) {
	last = strings.TrimSpace(last)
	if last == "" {
		last = strings.Repeat("0", CodeWidth)
	}
	n, err := strconv.Atoi(last)
	if err != nil || n < 0 {
		return "", fmt.Errorf("%w: código de produto inválido %q", domain.ErrInvalidInput, last)
	}
	return fmt.Sprintf("%0*d", CodeWidth, n+1), nil
}

// Alert datos para el email de estoque baixo/zerado.
type Alert struct {
	Email        string
	ProductName  string
	Status       string // AlertZeroed | AlertLow
	Quantity     int
	MinQuantity  int
	MovementType string
	Responsible  string
	Notes        string
}

// AlertFor decide si la nueva cantidad dispara notificación para el producto:
// requiere notify_on_low, email configurado y quedar en/bajo el mínimo o en cero.
func AlertFor(p *entity.Product, newQuantity int) (Alert, bool) {
	if p == nil || !p.NotifyOnLow || strings.TrimSpace(p.NotifyEmail) == "" {
		return Alert{}, false
	}
	zero := newQuantity == 0
	if !zero && newQuantity > p.MinQuantity {
		return Alert{}, false
	}
	status := AlertLow
	if zero {
		status = AlertZeroed
	}
	return Alert{
		Email:       strings.TrimSpace(p.NotifyEmail),
		ProductName: p.Name,
		Status:      status,
		Quantity:    newQuantity,
		MinQuantity: p.MinQuantity,
	}, true
}

var (
	headquartersSectors = []string{
		"TI", "Contabilidade", "RH", "Vendas", "Compras",
		"Financeiro", "Expedição", "Almoxarifado", "Diretoria",
	}
	branchSectors = []string{
		"Administração", "Vendas", "Operação", "Manutenção", "Conveniência",
	}
)

// SectorOptions setores sugeridos según el destino; nil = texto libre.
func SectorOptions(kind entity.DestinationKind) []string {
	switch kind {
	case entity.DestinationHeadquarters:
		return append([]string(nil), headquartersSectors...)
	case entity.DestinationBranch:
		return append([]string(nil), branchSectors...)
	default:
		return nil
	}
}
