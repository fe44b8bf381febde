package repository

import "github.com/tu-usuario/gestion-pos/internal/domain/entity"

// PerdidaRepository define el puerto de persistencia para pérdidas/mermas.
// A diferencia de pedidos, las pérdidas sí se editan y eliminan; el caso de
// uso es responsable de emitir el movimiento compensatorio en cada mutación.
type PerdidaRepository interface {
	Create(perdida *entity.Perdida) error
	GetByID(id string) (*entity.Perdida, error)
	List(tipo string, limit, offset int) ([]*entity.Perdida, error)
	Update(perdida *entity.Perdida) error
	Delete(id string) error
}
