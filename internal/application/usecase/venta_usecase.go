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

// VentaUseCase registra ventas de mostrador (carrito de punto de venta).
// Cada detalle descuenta stock del producto con una salida anclada a la
// venta. Como el resto de mutaciones multi-paso, no hay transacción: un
// detalle sin stock deja la venta y los descuentos anteriores persistidos y
// devuelve ErrStockInsuficiente.
type VentaUseCase struct {
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	libro        *inventario.LibroStock
	pdfGen       ComprobantePDFGenerator
}

// DetalleComprobante es una línea de la venta enriquecida con el nombre del
// producto, lista para renderizar en el comprobante.
type DetalleComprobante struct {
	ProductoNombre string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// ComprobantePDFGenerator es el puerto de generación del comprobante de
// venta en PDF (implementado en infraestructura).
type ComprobantePDFGenerator interface {
	GenerarComprobanteVenta(venta *entity.Venta, detalles []DetalleComprobante) ([]byte, error)
}

// NewVentaUseCase construye el caso de uso.
func NewVentaUseCase(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	libro *inventario.LibroStock,
	pdfGen ComprobantePDFGenerator,
) *VentaUseCase {
	return &VentaUseCase{ventaRepo: ventaRepo, productoRepo: productoRepo, libro: libro, pdfGen: pdfGen}
}

// Registrar persiste la venta con sus detalles al precio vigente de cada
// producto y descuenta el stock vía el libro.
func (uc *VentaUseCase) Registrar(in dto.RegistrarVentaRequest, usuario string) (*dto.VentaResponse, error) {
	if len(in.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	venta := &entity.Venta{
		ID:         uuid.New().String(),
		ClienteID:  in.ClienteID,
		MetodoPago: in.MetodoPago,
		Usuario:    usuario,
		Fecha:      now,
		CreatedAt:  now,
		Total:      decimal.Zero,
	}
	for _, d := range in.Detalles {
		if !d.Cantidad.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		producto, err := uc.productoRepo.GetByID(d.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.ErrNotFound
		}
		subtotal := producto.Precio.Mul(d.Cantidad)
		venta.Detalles = append(venta.Detalles, entity.VentaDetalle{
			ID:             uuid.New().String(),
			VentaID:        venta.ID,
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: producto.Precio,
			Subtotal:       subtotal,
		})
		venta.Total = venta.Total.Add(subtotal)
	}

	if err := uc.ventaRepo.Create(venta); err != nil {
		return nil, err
	}
	ref := inventario.Referencia{ID: venta.ID, Tipo: entity.ReferenciaVenta}
	for i := range venta.Detalles {
		d := &venta.Detalles[i]
		if err := uc.ventaRepo.CreateDetalle(d); err != nil {
			return nil, err
		}
		err := uc.libro.RegistrarProducto(d.ProductoID, entity.MovimientoSalida, d.Cantidad, ref, "venta de mostrador", usuario)
		if err != nil {
			return nil, err
		}
	}
	return toVentaResponse(venta), nil
}

// GetByID obtiene una venta por ID.
func (uc *VentaUseCase) GetByID(id string) (*dto.VentaResponse, error) {
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, nil
	}
	return toVentaResponse(venta), nil
}

// Comprobante genera el comprobante de la venta en PDF. Devuelve
// ErrNotFound si la venta no existe.
func (uc *VentaUseCase) Comprobante(id string) ([]byte, error) {
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.ErrNotFound
	}
	detalles := make([]DetalleComprobante, 0, len(venta.Detalles))
	for _, d := range venta.Detalles {
		nombre := d.ProductoID
		if producto, err := uc.productoRepo.GetByID(d.ProductoID); err == nil && producto != nil {
			nombre = producto.Nombre
		}
		detalles = append(detalles, DetalleComprobante{
			ProductoNombre: nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return uc.pdfGen.GenerarComprobanteVenta(venta, detalles)
}

// List lista ventas con paginación.
func (uc *VentaUseCase) List(page dto.PageRequest) ([]dto.VentaResponse, error) {
	page.DefaultPage()
	ventas, err := uc.ventaRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		items = append(items, *toVentaResponse(v))
	}
	return items, nil
}

func toVentaResponse(v *entity.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:         v.ID,
		ClienteID:  v.ClienteID,
		Total:      v.Total,
		MetodoPago: v.MetodoPago,
		Usuario:    v.Usuario,
		Fecha:      v.Fecha,
		Detalles:   make([]dto.DetalleVentaResponse, 0, len(v.Detalles)),
	}
	for _, d := range v.Detalles {
		resp.Detalles = append(resp.Detalles, dto.DetalleVentaResponse{
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return resp
}
