package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrarPerdidaRequest body para POST /api/perdidas. Tipo decide cuál de
// los dos ids aplica.
type RegistrarPerdidaRequest struct {
	Tipo          string          `json:"tipo" validate:"required,oneof=producto insumo"`
	ProductoID    string          `json:"producto_id"`
	InsumoID      string          `json:"insumo_id"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	Motivo        string          `json:"motivo" validate:"required"`
}

// ActualizarPerdidaRequest edición de una pérdida: solo cantidad, valor y
// motivo; el recurso afectado no cambia.
type ActualizarPerdidaRequest struct {
	Cantidad      *decimal.Decimal `json:"cantidad"`
	ValorUnitario *decimal.Decimal `json:"valor_unitario"`
	Motivo        *string          `json:"motivo"`
}

// PerdidaResponse salida de una pérdida.
type PerdidaResponse struct {
	ID            string          `json:"id"`
	Tipo          string          `json:"tipo"`
	ProductoID    string          `json:"producto_id,omitempty"`
	InsumoID      string          `json:"insumo_id,omitempty"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	Motivo        string          `json:"motivo"`
	Usuario       string          `json:"usuario,omitempty"`
	Fecha         time.Time       `json:"fecha"`
}
