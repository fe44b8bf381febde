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

// InsumoUseCase casos de uso CRUD para insumos más los movimientos sueltos
// que el CRUD dispara: compras (entrada) y ajustes manuales de conteo.
type InsumoUseCase struct {
	repo  repository.InsumoRepository
	libro *inventario.LibroStock
}

// NewInsumoUseCase construye el caso de uso.
func NewInsumoUseCase(repo repository.InsumoRepository, libro *inventario.LibroStock) *InsumoUseCase {
	return &InsumoUseCase{repo: repo, libro: libro}
}

// Create crea un insumo activo con stock cero.
func (uc *InsumoUseCase) Create(in dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	now := time.Now()
	insumo := &entity.Insumo{
		ID:            uuid.New().String(),
		Nombre:        in.Nombre,
		UnidadMedida:  in.UnidadMedida,
		Stock:         decimal.Zero,
		StockMinimo:   in.StockMinimo,
		CostoUnitario: in.CostoUnitario,
		ProveedorID:   in.ProveedorID,
		Activo:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(insumo); err != nil {
		return nil, err
	}
	return toInsumoResponse(insumo), nil
}

// GetByID obtiene un insumo por ID (nil si no existe).
func (uc *InsumoUseCase) GetByID(id string) (*dto.InsumoResponse, error) {
	insumo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, nil
	}
	return toInsumoResponse(insumo), nil
}

// List lista insumos con paginación.
func (uc *InsumoUseCase) List(soloActivos bool, page dto.PageRequest) ([]dto.InsumoResponse, error) {
	page.DefaultPage()
	insumos, err := uc.repo.List(soloActivos, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InsumoResponse, 0, len(insumos))
	for _, i := range insumos {
		items = append(items, *toInsumoResponse(i))
	}
	return items, nil
}

// Update actualiza los datos maestros del insumo (nunca el Stock).
func (uc *InsumoUseCase) Update(id string, in dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	insumo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		insumo.Nombre = *in.Nombre
	}
	if in.UnidadMedida != nil {
		insumo.UnidadMedida = *in.UnidadMedida
	}
	if in.StockMinimo != nil {
		insumo.StockMinimo = *in.StockMinimo
	}
	if in.CostoUnitario != nil {
		insumo.CostoUnitario = *in.CostoUnitario
	}
	if in.ProveedorID != nil {
		insumo.ProveedorID = *in.ProveedorID
	}
	insumo.UpdatedAt = time.Now()
	if err := uc.repo.Update(insumo); err != nil {
		return nil, err
	}
	return toInsumoResponse(insumo), nil
}

// Desactivar baja lógica del insumo.
func (uc *InsumoUseCase) Desactivar(id string) error {
	return uc.repo.Desactivar(id)
}

// RegistrarCompra registra una entrada de stock por compra a proveedor.
func (uc *InsumoUseCase) RegistrarCompra(id string, in dto.CompraInsumoRequest, usuario string) error {
	notas := in.Notas
	if notas == "" {
		notas = "compra a proveedor"
	}
	return uc.libro.RegistrarInsumo(id, entity.MovimientoEntrada, in.Cantidad, inventario.Referencia{}, notas, usuario)
}

// AjustarStock corrige el contador tras un conteo físico. Cantidad positiva
// registra un ajuste; negativa, una salida por merma de conteo.
func (uc *InsumoUseCase) AjustarStock(id string, in dto.AjusteInsumoRequest, usuario string) error {
	if in.Cantidad.IsZero() {
		return domain.ErrInvalidInput
	}
	notas := in.Notas
	if notas == "" {
		notas = "ajuste por conteo físico"
	}
	if in.Cantidad.GreaterThan(decimal.Zero) {
		return uc.libro.RegistrarInsumo(id, entity.MovimientoAjuste, in.Cantidad, inventario.Referencia{}, notas, usuario)
	}
	return uc.libro.RegistrarInsumo(id, entity.MovimientoSalida, in.Cantidad.Neg(), inventario.Referencia{}, notas, usuario)
}

func toInsumoResponse(i *entity.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:            i.ID,
		Nombre:        i.Nombre,
		UnidadMedida:  i.UnidadMedida,
		Stock:         i.Stock,
		StockMinimo:   i.StockMinimo,
		CostoUnitario: i.CostoUnitario,
		ProveedorID:   i.ProveedorID,
		BajoMinimo:    i.BajoMinimo(),
		Activo:        i.Activo,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
