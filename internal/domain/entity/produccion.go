package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produccion registra una corrida de producción: conversión de insumos en
// stock de producto terminado. Inmutable una vez creada.
type Produccion struct {
	ID         string
	ProductoID string
	Cantidad   decimal.Decimal
	Usuario    string // opcional
	Notas      string
	CreatedAt  time.Time

	Insumos []ProduccionInsumo
}

// ProduccionInsumo es el detalle de auditoría de una producción: exactamente
// cuánto se consumió de cada insumo en esa corrida.
type ProduccionInsumo struct {
	ID           string
	ProduccionID string
	InsumoID     string
	Cantidad     decimal.Decimal
}
