package entity

import "time"

// Branch representa una filial que recibe envíos. Solo lectura en la consola.
type Branch struct {
	ID   string
	Name string
}

// BranchShipment registra stock enviado a una filial (tabla envios_filiais).
// BranchID nil representa la Matriz (ver DestinationHeadquartersTag).
type BranchShipment struct {
	ID        string
	BranchID  *string
	ProductID string
	Quantity  int
	SentAt    time.Time
}
