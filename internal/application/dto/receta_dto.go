package dto

import "github.com/shopspring/decimal"

// GuardarRecetaLineaRequest alta/edición de una línea de receta.
type GuardarRecetaLineaRequest struct {
	InsumoID          string          `json:"insumo_id" validate:"required"`
	CantidadPorUnidad decimal.Decimal `json:"cantidad_por_unidad"`
	Obligatorio       bool            `json:"obligatorio"`
}

// RecetaLineaResponse línea de receta enriquecida con datos del insumo.
type RecetaLineaResponse struct {
	ID                string          `json:"id"`
	InsumoID          string          `json:"insumo_id"`
	InsumoNombre      string          `json:"insumo_nombre"`
	InsumoStock       decimal.Decimal `json:"insumo_stock"`
	CantidadPorUnidad decimal.Decimal `json:"cantidad_por_unidad"`
	Obligatorio       bool            `json:"obligatorio"`
}

// RecetaResponse receta completa de un producto con la derivación de
// unidades producibles con el stock actual.
type RecetaResponse struct {
	ProductoID  string                `json:"producto_id"`
	Lineas      []RecetaLineaResponse `json:"lineas"`
	Producibles decimal.Decimal       `json:"producibles"`
}
