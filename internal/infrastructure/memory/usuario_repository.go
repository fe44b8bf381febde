package memory

import (
	"sync"

	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// UsuarioRepository guarda usuarios en memoria.
type UsuarioRepository struct {
	mu       sync.Mutex
	usuarios map[string]*entity.Usuario
}

// NewUsuarioRepository construye el repositorio vacío.
func NewUsuarioRepository() *UsuarioRepository {
	return &UsuarioRepository{usuarios: make(map[string]*entity.Usuario)}
}

func (r *UsuarioRepository) Create(usuario *entity.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.usuarios {
		if u.Email == usuario.Email {
			return domain.ErrEmailYaRegistrado
		}
	}
	clone := *usuario
	r.usuarios[usuario.ID] = &clone
	return nil
}

func (r *UsuarioRepository) GetByID(id string) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.usuarios[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *UsuarioRepository) FindByEmail(email string) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.usuarios {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}
