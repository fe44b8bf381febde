package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/application/dto"
	"github.com/tu-usuario/gestion-pos/internal/application/inventario"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

// PerdidaUseCase CRUD de pérdidas/mermas. Cada mutación emite el movimiento
// compensatorio en el libro que corresponda para que los contadores de stock
// queden consistentes con el registro de pérdidas: baja al crear, la inversa
// al eliminar y el delta al editar la cantidad.
type PerdidaUseCase struct {
	repo  repository.PerdidaRepository
	libro *inventario.LibroStock
}

// NewPerdidaUseCase construye el caso de uso.
func NewPerdidaUseCase(repo repository.PerdidaRepository, libro *inventario.LibroStock) *PerdidaUseCase {
	return &PerdidaUseCase{repo: repo, libro: libro}
}

// Registrar crea la pérdida y descuenta el stock del recurso afectado con un
// movimiento de tipo perdida anclado a ella.
func (uc *PerdidaUseCase) Registrar(in dto.RegistrarPerdidaRequest, usuario string) (*dto.PerdidaResponse, error) {
	if !in.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Tipo {
	case entity.PerdidaProducto:
		if in.ProductoID == "" {
			return nil, domain.ErrInvalidInput
		}
	case entity.PerdidaInsumo:
		if in.InsumoID == "" {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	perdida := &entity.Perdida{
		ID:            uuid.New().String(),
		Tipo:          in.Tipo,
		ProductoID:    in.ProductoID,
		InsumoID:      in.InsumoID,
		Cantidad:      in.Cantidad,
		ValorUnitario: in.ValorUnitario,
		ValorTotal:    in.Cantidad.Mul(in.ValorUnitario),
		Motivo:        in.Motivo,
		Usuario:       usuario,
		Fecha:         now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(perdida); err != nil {
		return nil, err
	}
	ref := inventario.Referencia{ID: perdida.ID, Tipo: entity.ReferenciaPerdida}
	if err := uc.movimiento(perdida, entity.MovimientoPerdida, in.Cantidad, ref, usuario); err != nil {
		return nil, err
	}
	return toPerdidaResponse(perdida), nil
}

// Actualizar edita cantidad, valor o motivo y emite el movimiento por el
// delta de cantidad: más pérdida descuenta, menos pérdida devuelve.
func (uc *PerdidaUseCase) Actualizar(id string, in dto.ActualizarPerdidaRequest, usuario string) (*dto.PerdidaResponse, error) {
	perdida, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if perdida == nil {
		return nil, domain.ErrNotFound
	}

	delta := decimal.Zero
	if in.Cantidad != nil {
		if !in.Cantidad.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		delta = in.Cantidad.Sub(perdida.Cantidad)
		perdida.Cantidad = *in.Cantidad
	}
	if in.ValorUnitario != nil {
		perdida.ValorUnitario = *in.ValorUnitario
	}
	if in.Motivo != nil {
		perdida.Motivo = *in.Motivo
	}
	perdida.ValorTotal = perdida.Cantidad.Mul(perdida.ValorUnitario)
	perdida.UpdatedAt = time.Now()
	if err := uc.repo.Update(perdida); err != nil {
		return nil, err
	}

	ref := inventario.Referencia{ID: perdida.ID, Tipo: entity.ReferenciaPerdida}
	switch {
	case delta.GreaterThan(decimal.Zero):
		if err := uc.movimiento(perdida, entity.MovimientoPerdida, delta, ref, usuario); err != nil {
			return nil, err
		}
	case delta.IsNegative():
		if err := uc.movimiento(perdida, entity.MovimientoEntrada, delta.Neg(), ref, usuario); err != nil {
			return nil, err
		}
	}
	return toPerdidaResponse(perdida), nil
}

// Eliminar borra la pérdida y devuelve el stock con el movimiento inverso.
func (uc *PerdidaUseCase) Eliminar(id string, usuario string) error {
	perdida, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if perdida == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	ref := inventario.Referencia{ID: perdida.ID, Tipo: entity.ReferenciaPerdida}
	return uc.movimiento(perdida, entity.MovimientoEntrada, perdida.Cantidad, ref, usuario)
}

// GetByID obtiene una pérdida por ID.
func (uc *PerdidaUseCase) GetByID(id string) (*dto.PerdidaResponse, error) {
	perdida, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if perdida == nil {
		return nil, nil
	}
	return toPerdidaResponse(perdida), nil
}

// List lista pérdidas, opcionalmente filtradas por tipo.
func (uc *PerdidaUseCase) List(tipo string, page dto.PageRequest) ([]dto.PerdidaResponse, error) {
	page.DefaultPage()
	perdidas, err := uc.repo.List(tipo, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PerdidaResponse, 0, len(perdidas))
	for _, p := range perdidas {
		items = append(items, *toPerdidaResponse(p))
	}
	return items, nil
}

// movimiento emite el movimiento compensatorio en el libro del recurso. El
// libro de productos solo conoce entrada/salida; la clave perdida existe
// únicamente en el libro de insumos.
func (uc *PerdidaUseCase) movimiento(p *entity.Perdida, tipoClave string, cantidad decimal.Decimal, ref inventario.Referencia, usuario string) error {
	if p.Tipo == entity.PerdidaInsumo {
		return uc.libro.RegistrarInsumo(p.InsumoID, tipoClave, cantidad, ref, p.Motivo, usuario)
	}
	if tipoClave == entity.MovimientoPerdida {
		tipoClave = entity.MovimientoSalida
	}
	return uc.libro.RegistrarProducto(p.ProductoID, tipoClave, cantidad, ref, p.Motivo, usuario)
}

func toPerdidaResponse(p *entity.Perdida) *dto.PerdidaResponse {
	return &dto.PerdidaResponse{
		ID:            p.ID,
		Tipo:          p.Tipo,
		ProductoID:    p.ProductoID,
		InsumoID:      p.InsumoID,
		Cantidad:      p.Cantidad,
		ValorUnitario: p.ValorUnitario,
		ValorTotal:    p.ValorTotal,
		Motivo:        p.Motivo,
		Usuario:       p.Usuario,
		Fecha:         p.Fecha,
	}
}
