package dto

import "time"

// RegisterMovementRequest body de POST /api/movements.
// Destination: "" local, "VAN", "AGRICOPEL" o id de filial.
type RegisterMovementRequest struct {
	ProductID   string `json:"product_id"`
	Type        string `json:"type"` // entrada | saida
	Quantity    int    `json:"quantity"`
	Responsible string `json:"responsible"`
	Requester   string `json:"requester"`
	Ticket      string `json:"ticket"`
	Sector      string `json:"sector"`
	Notes       string `json:"notes"`
	Destination string `json:"destination"`
}

// RegisterShipmentRequest body de POST /api/branches/:id/shipments.
type RegisterShipmentRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// MovementRow fila de movimentações recientes o del histórico.
type MovementRow struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Responsible string    `json:"responsible"`
	Requester   string    `json:"requester"`
	Ticket      string    `json:"ticket"`
	Sector      string    `json:"sector"`
	Branch      string    `json:"branch"`
	Notes       string    `json:"notes"`
}

// BranchResponse filial seleccionable (incluye la Matriz).
type BranchResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShipmentRow envío enriquecido con la última movimentação correspondiente.
type ShipmentRow struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Intensity   string    `json:"intensity"` // low, medium, high
	SentAt      time.Time `json:"sent_at"`
	Requester   string    `json:"requester"`
	Notes       string    `json:"notes"`
}

// ShipmentListResponse envíos de una filial.
type ShipmentListResponse struct {
	Branch BranchResponse `json:"branch"`
	Items  []ShipmentRow  `json:"items"`
}

// MovementFormResponse metadatos del formulario de movimentação.
type MovementFormResponse struct {
	Products     []Option            `json:"products"`
	Destinations []Option            `json:"destinations"`
	Sectors      map[string][]string `json:"sectors"` // por destino: matriz, filial
}

// MovementResponse respuesta de POST /api/movements.
type MovementResponse struct {
	ID          string   `json:"id"`
	NewQuantity int      `json:"new_quantity"`
	Notices     []Notice `json:"notices"`
}
