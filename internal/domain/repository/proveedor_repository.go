package repository

import "github.com/tu-usuario/gestion-pos/internal/domain/entity"

// ProveedorRepository define el puerto de persistencia para proveedores.
type ProveedorRepository interface {
	Create(proveedor *entity.Proveedor) error
	GetByID(id string) (*entity.Proveedor, error)
	List(soloActivos bool, limit, offset int) ([]*entity.Proveedor, error)
	Update(proveedor *entity.Proveedor) error
	Desactivar(id string) error
}
