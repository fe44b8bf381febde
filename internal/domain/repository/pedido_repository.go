package repository

import "github.com/tu-usuario/gestion-pos/internal/domain/entity"

// PedidoRepository define el puerto de persistencia para pedidos y sus
// líneas. Los pedidos nunca se eliminan; la cancelación es UpdateEstado.
type PedidoRepository interface {
	Create(pedido *entity.Pedido) error
	GetByID(id string) (*entity.Pedido, error)
	List(estadoClave string, limit, offset int) ([]*entity.Pedido, error)
	UpdateEstado(id, estadoClave string) error

	CreateLinea(linea *entity.PedidoLinea) error
	ListLineas(pedidoID string) ([]entity.PedidoLinea, error)
	DeleteLineas(pedidoID string) error
}
