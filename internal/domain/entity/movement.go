package entity

import (
	"fmt"
	"time"
)

// Tipos de movimentação (valores guardados en movimentacoes.tipo).
const (
	MovementTypeIn  = "entrada"
	MovementTypeOut = "saida"
)

// IsValidMovementType indica si t es entrada o saida.
func IsValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// Movement es una transacción de entrada o salida sobre un producto.
// Inmutable: solo se borra en bloque junto con su producto.
type Movement struct {
	ID          string
	ProductID   string
	Product     *Product // join movimentacoes → produtos; puede ser nil si el producto ya no existe
	Type        string
	Quantity    int // siempre > 0; el signo lo da Type
	Responsible string
	Requester   string
	Ticket      string
	Sector      string
	Notes       string
	BranchID    *string // nil = local, Van o Matriz (ver Destination)
	Date        time.Time
}

// SignedQuantity devuelve +Quantity para entradas y -Quantity para salidas.
func (m *Movement) SignedQuantity() int {
	if m.Type == MovementTypeOut {
		return -m.Quantity
	}
	return m.Quantity
}

// ProductName devuelve el nombre del producto unido o "—".
func (m *Movement) ProductName() string {
	if m.Product == nil || m.Product.Name == "" {
		return "—"
	}
	return m.Product.Name
}

// Validate verifica los invariantes de un registro leído del gateway.
func (m *Movement) Validate() error {
	if !IsValidMovementType(m.Type) {
		return fmt.Errorf("movimentação %s com tipo desconhecido %q", m.ID, m.Type)
	}
	if m.Quantity <= 0 {
		return fmt.Errorf("movimentação %s com quantidade não positiva (%d)", m.ID, m.Quantity)
	}
	return nil
}
