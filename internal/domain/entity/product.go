package entity

import (
	"fmt"
	"time"
)

// Product representa un ítem del estoque de TI (tabla produtos).
// Quantity solo cambia como efecto de registrar un Movement.
type Product struct {
	ID          string
	Name        string
	Code        string // secuencial con ceros a la izquierda ("000042"), único
	Quantity    int
	MinQuantity int
	Category    string
	Description string
	NotifyOnLow bool
	NotifyEmail string // vacío = sin destinatario
	CreatedAt   time.Time
}

// Validate verifica los invariantes de un registro leído del gateway.
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("produto sem id")
	}
	if p.Quantity < 0 {
		return fmt.Errorf("produto %s com quantidade negativa (%d)", p.ID, p.Quantity)
	}
	if p.MinQuantity < 0 {
		return fmt.Errorf("produto %s com quantidade mínima negativa (%d)", p.ID, p.MinQuantity)
	}
	return nil
}
