package dto

import "time"

// CreateProductRequest body de POST /api/products. Code se genera en el servidor.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	Category    string `json:"category"`
	Description string `json:"description"`
	NotifyOnLow bool   `json:"notify_on_low"`
	NotifyEmail string `json:"notify_email"`
}

// UpdateProductRequest body de PUT /api/products/:id. Sin código ni cantidad.
type UpdateProductRequest struct {
	Name        string `json:"name"`
	MinQuantity int    `json:"min_quantity"`
	Category    string `json:"category"`
	Description string `json:"description"`
	NotifyOnLow bool   `json:"notify_on_low"`
	NotifyEmail string `json:"notify_email"`
}

// ProductResponse salida de un produto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Quantity    int       `json:"quantity"`
	MinQuantity int       `json:"min_quantity"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	NotifyOnLow bool      `json:"notify_on_low"`
	NotifyEmail string    `json:"notify_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductRow fila de la tabla de produtos con su estado.
type ProductRow struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	Status      string `json:"status"`       // out, low, normal
	StatusLabel string `json:"status_label"` // Sem Estoque, Estoque Baixo, Normal
}

// ProductActionResponse respuesta de crear/editar/eliminar produto.
type ProductActionResponse struct {
	Product *ProductResponse `json:"product,omitempty"`
	Notices []Notice         `json:"notices"`
}
