package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pérdida según el recurso afectado.
const (
	PerdidaProducto = "producto"
	PerdidaInsumo   = "insumo"
)

// Perdida registra una merma o baja de stock (rotura, vencimiento, robo).
// Cada alta/edición/baja de una pérdida emite un movimiento compensatorio en
// el libro correspondiente para que los contadores de stock queden
// consistentes con este registro.
type Perdida struct {
	ID            string
	Tipo          string // producto | insumo
	ProductoID    string // según Tipo, uno de los dos
	InsumoID      string
	Cantidad      decimal.Decimal
	ValorUnitario decimal.Decimal
	ValorTotal    decimal.Decimal // Cantidad * ValorUnitario
	Motivo        string
	Usuario       string
	Fecha         time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecursoID devuelve el id del recurso afectado según el tipo.
func (p *Perdida) RecursoID() string {
	if p.Tipo == PerdidaInsumo {
		return p.InsumoID
	}
	return p.ProductoID
}
