package memory

import (
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// ReferenciaRepository resuelve claves de catálogo contra mapas fijos con
// las mismas claves que los seeds de la base de datos.
type ReferenciaRepository struct {
	tiposInventario map[string]string
	tiposInsumo     map[string]string
	estadosPedido   map[string]string
}

// NewReferenciaRepository construye el catálogo con las claves conocidas.
func NewReferenciaRepository() *ReferenciaRepository {
	return &ReferenciaRepository{
		tiposInventario: map[string]string{
			entity.MovimientoEntrada: "ti-entrada",
			entity.MovimientoSalida:  "ti-salida",
		},
		tiposInsumo: map[string]string{
			entity.MovimientoEntrada: "tm-entrada",
			entity.MovimientoSalida:  "tm-salida",
			entity.MovimientoConsumo: "tm-consumo",
			entity.MovimientoPerdida: "tm-perdida",
			entity.MovimientoAjuste:  "tm-ajuste",
		},
		estadosPedido: map[string]string{
			entity.EstadoPedidoPendiente: "ep-pendiente",
			entity.EstadoPedidoEntregado: "ep-entregado",
			entity.EstadoPedidoCancelado: "ep-cancelado",
		},
	}
}

func (r *ReferenciaRepository) TipoMovimientoInventarioID(clave string) (string, error) {
	return buscar(r.tiposInventario, clave)
}

func (r *ReferenciaRepository) TipoMovimientoInsumoID(clave string) (string, error) {
	return buscar(r.tiposInsumo, clave)
}

func (r *ReferenciaRepository) EstadoPedidoID(clave string) (string, error) {
	return buscar(r.estadosPedido, clave)
}

func buscar(m map[string]string, clave string) (string, error) {
	id, ok := m[clave]
	if !ok {
		return "", domain.ErrNotFound
	}
	return id, nil
}
