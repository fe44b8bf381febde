package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// InsumoRepository define el puerto de persistencia para Insumo.
type InsumoRepository interface {
	Create(insumo *entity.Insumo) error
	GetByID(id string) (*entity.Insumo, error)
	List(soloActivos bool, limit, offset int) ([]*entity.Insumo, error)
	Update(insumo *entity.Insumo) error
	UpdateStock(id string, stock decimal.Decimal) error
	Desactivar(id string) error
}
