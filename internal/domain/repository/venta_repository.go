package repository

import "github.com/tu-usuario/gestion-pos/internal/domain/entity"

// VentaRepository define el puerto de persistencia para ventas de mostrador.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	CreateDetalle(detalle *entity.VentaDetalle) error
	GetByID(id string) (*entity.Venta, error)
	List(limit, offset int) ([]*entity.Venta, error)
}
