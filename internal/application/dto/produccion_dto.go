package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProducirRequest body para POST /api/producciones.
type ProducirRequest struct {
	ProductoID string          `json:"producto_id" validate:"required"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Notas      string          `json:"notas"`
}

// ProduccionInsumoResponse detalle de un insumo consumido en la corrida.
type ProduccionInsumoResponse struct {
	InsumoID string          `json:"insumo_id"`
	Cantidad decimal.Decimal `json:"cantidad"`
}

// ProduccionResponse salida de una corrida de producción. Si Faltantes no
// está vacío la corrida no se ejecutó y el resto de campos vienen vacíos.
type ProduccionResponse struct {
	ID         string                     `json:"id,omitempty"`
	ProductoID string                     `json:"producto_id,omitempty"`
	Cantidad   decimal.Decimal            `json:"cantidad,omitempty"`
	Usuario    string                     `json:"usuario,omitempty"`
	Notas      string                     `json:"notas,omitempty"`
	Insumos    []ProduccionInsumoResponse `json:"insumos,omitempty"`
	Faltantes  []FaltanteInsumoResponse   `json:"faltantes,omitempty"`
	CreatedAt  time.Time                  `json:"created_at,omitempty"`
}
