package entity

import "strings"

// Valores especiales del selector de destino de una movimentação.
const (
	DestinationVanTag          = "VAN"       // estoque móvel, se registra en el campo setor
	DestinationHeadquartersTag = "AGRICOPEL" // matriz, se registra como filial_id NULL
)

// DestinationKind clasifica el valor del selector de destino.
type DestinationKind int

const (
	DestinationLocal DestinationKind = iota
	DestinationVan
	DestinationHeadquarters
	DestinationBranch
)

// Destination es el selector de destino ya interpretado.
type Destination struct {
	Kind     DestinationKind
	BranchID string // solo para DestinationBranch
}

// ParseDestination aplica la regla de cuatro vías:
// "" → local, "VAN" → van, "AGRICOPEL" → matriz, cualquier otro → id de filial.
func ParseDestination(selector string) Destination {
	switch s := strings.TrimSpace(selector); s {
	case "":
		return Destination{Kind: DestinationLocal}
	case DestinationVanTag:
		return Destination{Kind: DestinationVan}
	case DestinationHeadquartersTag:
		return Destination{Kind: DestinationHeadquarters}
	default:
		return Destination{Kind: DestinationBranch, BranchID: s}
	}
}

// BranchRef devuelve la referencia de filial a guardar.
// Local, Van y Matriz se guardan todas como NULL: la Matriz y "sin filial" no se
// pueden distinguir después al leer movimentacoes/envios_filiais.
func (d Destination) BranchRef() *string {
	if d.Kind != DestinationBranch {
		return nil
	}
	id := d.BranchID
	return &id
}

// RecordsShipment indica si una salida hacia este destino genera un envio_filial.
func (d Destination) RecordsShipment() bool {
	return d.Kind == DestinationHeadquarters || d.Kind == DestinationBranch
}

// ParseShipmentTarget interpreta el selector usado al navegar o registrar envíos:
// solo Matriz o una filial concreta son válidos.
func ParseShipmentTarget(selector string) (Destination, bool) {
	d := ParseDestination(selector)
	return d, d.RecordsShipment()
}
