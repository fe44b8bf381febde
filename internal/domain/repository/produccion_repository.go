package repository

import "github.com/tu-usuario/gestion-pos/internal/domain/entity"

// ProduccionRepository define el puerto de persistencia para corridas de
// producción y su detalle de insumos consumidos (auditoría inmutable).
type ProduccionRepository interface {
	Create(produccion *entity.Produccion) error
	CreateInsumo(detalle *entity.ProduccionInsumo) error
	GetByID(id string) (*entity.Produccion, error)
	List(limit, offset int) ([]*entity.Produccion, error)
}
