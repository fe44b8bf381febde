package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearInsumoRequest entrada para crear un insumo.
type CrearInsumoRequest struct {
	Nombre        string          `json:"nombre" validate:"required,min=1,max=200"`
	UnidadMedida  string          `json:"unidad_medida" validate:"required"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	ProveedorID   string          `json:"proveedor_id"`
}

// ActualizarInsumoRequest entrada para actualizar un insumo (sin Stock).
type ActualizarInsumoRequest struct {
	Nombre        *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	UnidadMedida  *string          `json:"unidad_medida"`
	StockMinimo   *decimal.Decimal `json:"stock_minimo"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario"`
	ProveedorID   *string          `json:"proveedor_id"`
}

// CompraInsumoRequest entrada para registrar una compra (entrada de stock).
type CompraInsumoRequest struct {
	Cantidad decimal.Decimal `json:"cantidad"`
	Notas    string          `json:"notas"`
}

// AjusteInsumoRequest entrada para un ajuste manual de stock. Cantidad puede
// ser negativa (merma de conteo).
type AjusteInsumoRequest struct {
	Cantidad decimal.Decimal `json:"cantidad"`
	Notas    string          `json:"notas"`
}

// InsumoResponse salida de un insumo.
type InsumoResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	UnidadMedida  string          `json:"unidad_medida"`
	Stock         decimal.Decimal `json:"stock"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	ProveedorID   string          `json:"proveedor_id,omitempty"`
	BajoMinimo    bool            `json:"bajo_minimo"`
	Activo        bool            `json:"activo"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
