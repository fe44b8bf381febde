package memory

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// InsumoRepository guarda insumos en memoria.
type InsumoRepository struct {
	mu      sync.Mutex
	insumos map[string]*entity.Insumo
	orden   []string
}

// NewInsumoRepository construye el repositorio vacío.
func NewInsumoRepository() *InsumoRepository {
	return &InsumoRepository{insumos: make(map[string]*entity.Insumo)}
}

func (r *InsumoRepository) Create(insumo *entity.Insumo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.insumos[insumo.ID]; ok {
		return domain.ErrDuplicado
	}
	clone := *insumo
	r.insumos[insumo.ID] = &clone
	r.orden = append(r.orden, insumo.ID)
	return nil
}

func (r *InsumoRepository) GetByID(id string) (*entity.Insumo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.insumos[id]
	if !ok {
		return nil, nil
	}
	clone := *i
	return &clone, nil
}

func (r *InsumoRepository) List(soloActivos bool, limit, offset int) ([]*entity.Insumo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.Insumo, 0, len(r.orden))
	for _, id := range r.orden {
		i := r.insumos[id]
		if soloActivos && !i.Activo {
			continue
		}
		clone := *i
		items = append(items, &clone)
	}
	return paginar(items, limit, offset), nil
}

func (r *InsumoRepository) Update(insumo *entity.Insumo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.insumos[insumo.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *insumo
	r.insumos[insumo.ID] = &clone
	return nil
}

func (r *InsumoRepository) UpdateStock(id string, stock decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.insumos[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Stock = stock
	return nil
}

func (r *InsumoRepository) Desactivar(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.insumos[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Activo = false
	return nil
}
