package memory

import (
	"sync"

	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// VentaRepository guarda ventas y sus detalles en memoria.
type VentaRepository struct {
	mu       sync.Mutex
	ventas   map[string]*entity.Venta
	orden    []string
	detalles []*entity.VentaDetalle
}

// NewVentaRepository construye el repositorio vacío.
func NewVentaRepository() *VentaRepository {
	return &VentaRepository{ventas: make(map[string]*entity.Venta)}
}

func (r *VentaRepository) Create(venta *entity.Venta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ventas[venta.ID]; ok {
		return domain.ErrDuplicado
	}
	clone := *venta
	clone.Detalles = nil
	r.ventas[venta.ID] = &clone
	r.orden = append(r.orden, venta.ID)
	return nil
}

func (r *VentaRepository) CreateDetalle(detalle *entity.VentaDetalle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *detalle
	r.detalles = append(r.detalles, &clone)
	return nil
}

func (r *VentaRepository) GetByID(id string) (*entity.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok {
		return nil, nil
	}
	clone := *v
	clone.Detalles = r.detallesDe(id)
	return &clone, nil
}

func (r *VentaRepository) List(limit, offset int) ([]*entity.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.Venta, 0, len(r.orden))
	for _, id := range r.orden {
		clone := *r.ventas[id]
		clone.Detalles = r.detallesDe(id)
		items = append(items, &clone)
	}
	return paginar(items, limit, offset), nil
}

// detallesDe se llama con el lock tomado.
func (r *VentaRepository) detallesDe(ventaID string) []entity.VentaDetalle {
	items := make([]entity.VentaDetalle, 0)
	for _, d := range r.detalles {
		if d.VentaID == ventaID {
			items = append(items, *d)
		}
	}
	return items
}
