package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovimientoResponse fila del libro de movimientos (productos o insumos).
type MovimientoResponse struct {
	ID             string          `json:"id"`
	RecursoID      string          `json:"recurso_id"`
	Tipo           string          `json:"tipo"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	ReferenciaID   string          `json:"referencia_id,omitempty"`
	ReferenciaTipo string          `json:"referencia_tipo,omitempty"`
	Notas          string          `json:"notas,omitempty"`
	CreadoPor      string          `json:"creado_por,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
