package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para Producto (DIP).
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	List(soloActivos bool, limit, offset int) ([]*entity.Producto, error)
	Update(producto *entity.Producto) error
	UpdateStock(id string, stock decimal.Decimal) error
	Desactivar(id string) error
}
