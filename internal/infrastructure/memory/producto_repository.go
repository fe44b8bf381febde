// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Lo usan los tests de los motores de reserva, producción y libro
// de stock; el orden de los listados es el de inserción para que los
// resultados sean deterministas.
package memory

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// ProductoRepository guarda productos en memoria.
type ProductoRepository struct {
	mu        sync.Mutex
	productos map[string]*entity.Producto
	orden     []string
}

// NewProductoRepository construye el repositorio vacío.
func NewProductoRepository() *ProductoRepository {
	return &ProductoRepository{productos: make(map[string]*entity.Producto)}
}

func (r *ProductoRepository) Create(producto *entity.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.productos[producto.ID]; ok {
		return domain.ErrDuplicado
	}
	clone := *producto
	r.productos[producto.ID] = &clone
	r.orden = append(r.orden, producto.ID)
	return nil
}

func (r *ProductoRepository) GetByID(id string) (*entity.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *ProductoRepository) List(soloActivos bool, limit, offset int) ([]*entity.Producto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.Producto, 0, len(r.orden))
	for _, id := range r.orden {
		p := r.productos[id]
		if soloActivos && !p.Activo {
			continue
		}
		clone := *p
		items = append(items, &clone)
	}
	return paginar(items, limit, offset), nil
}

func (r *ProductoRepository) Update(producto *entity.Producto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.productos[producto.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *producto
	r.productos[producto.ID] = &clone
	return nil
}

func (r *ProductoRepository) UpdateStock(id string, stock decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *ProductoRepository) Desactivar(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Activo = false
	return nil
}

// paginar aplica limit/offset sobre un slice ya ordenado.
func paginar[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
