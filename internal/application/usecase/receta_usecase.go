package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pos/internal/application/dto"
	"github.com/tu-usuario/gestion-pos/internal/application/recetas"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

// RecetaUseCase CRUD de líneas de receta. Los motores solo leen recetas (vía
// CatalogoRecetas); la edición vive acá.
type RecetaUseCase struct {
	recetaRepo   repository.RecetaRepository
	productoRepo repository.ProductoRepository
	insumoRepo   repository.InsumoRepository
	catalogo     *recetas.CatalogoRecetas
}

// NewRecetaUseCase construye el caso de uso.
func NewRecetaUseCase(
	recetaRepo repository.RecetaRepository,
	productoRepo repository.ProductoRepository,
	insumoRepo repository.InsumoRepository,
	catalogo *recetas.CatalogoRecetas,
) *RecetaUseCase {
	return &RecetaUseCase{
		recetaRepo:   recetaRepo,
		productoRepo: productoRepo,
		insumoRepo:   insumoRepo,
		catalogo:     catalogo,
	}
}

// Listar devuelve la receta completa del producto con las unidades
// producibles con el stock actual.
func (uc *RecetaUseCase) Listar(productoID string) (*dto.RecetaResponse, error) {
	producto, err := uc.productoRepo.GetByID(productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	lineas, err := uc.catalogo.PorProducto(productoID)
	if err != nil {
		return nil, err
	}
	producibles, err := uc.catalogo.UnidadesProducibles(productoID)
	if err != nil {
		return nil, err
	}
	resp := &dto.RecetaResponse{ProductoID: productoID, Producibles: producibles, Lineas: make([]dto.RecetaLineaResponse, 0, len(lineas))}
	for _, l := range lineas {
		resp.Lineas = append(resp.Lineas, dto.RecetaLineaResponse{
			ID:                l.ID,
			InsumoID:          l.InsumoID,
			InsumoNombre:      l.InsumoNombre,
			InsumoStock:       l.InsumoStock,
			CantidadPorUnidad: l.CantidadPorUnidad,
			Obligatorio:       l.Obligatorio,
		})
	}
	return resp, nil
}

// Guardar inserta o reemplaza la línea (producto, insumo) de la receta.
func (uc *RecetaUseCase) Guardar(productoID string, in dto.GuardarRecetaLineaRequest) error {
	if in.CantidadPorUnidad.IsNegative() {
		return domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(productoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	insumo, err := uc.insumoRepo.GetByID(in.InsumoID)
	if err != nil {
		return err
	}
	if insumo == nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	return uc.recetaRepo.Upsert(&entity.RecetaLinea{
		ID:                uuid.New().String(),
		ProductoID:        productoID,
		InsumoID:          in.InsumoID,
		CantidadPorUnidad: in.CantidadPorUnidad,
		Obligatorio:       in.Obligatorio,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

// Eliminar borra una línea de la receta.
func (uc *RecetaUseCase) Eliminar(lineaID string) error {
	return uc.recetaRepo.Delete(lineaID)
}

// Vaciar borra la receta completa de un producto.
func (uc *RecetaUseCase) Vaciar(productoID string) error {
	return uc.recetaRepo.DeleteByProducto(productoID)
}
