package memory

import (
	"sync"

	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// PerdidaRepository guarda pérdidas en memoria.
type PerdidaRepository struct {
	mu       sync.Mutex
	perdidas map[string]*entity.Perdida
	orden    []string
}

// NewPerdidaRepository construye el repositorio vacío.
func NewPerdidaRepository() *PerdidaRepository {
	return &PerdidaRepository{perdidas: make(map[string]*entity.Perdida)}
}

func (r *PerdidaRepository) Create(perdida *entity.Perdida) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.perdidas[perdida.ID]; ok {
		return domain.ErrDuplicado
	}
	clone := *perdida
	r.perdidas[perdida.ID] = &clone
	r.orden = append(r.orden, perdida.ID)
	return nil
}

func (r *PerdidaRepository) GetByID(id string) (*entity.Perdida, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.perdidas[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *PerdidaRepository) List(tipo string, limit, offset int) ([]*entity.Perdida, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.Perdida, 0, len(r.orden))
	for _, id := range r.orden {
		p := r.perdidas[id]
		if tipo != "" && p.Tipo != tipo {
			continue
		}
		clone := *p
		items = append(items, &clone)
	}
	return paginar(items, limit, offset), nil
}

func (r *PerdidaRepository) Update(perdida *entity.Perdida) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.perdidas[perdida.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *perdida
	r.perdidas[perdida.ID] = &clone
	return nil
}

func (r *PerdidaRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.perdidas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.perdidas, id)
	for i, oid := range r.orden {
		if oid == id {
			r.orden = append(r.orden[:i], r.orden[i+1:]...)
			break
		}
	}
	return nil
}
