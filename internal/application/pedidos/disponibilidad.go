package pedidos

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/application/recetas"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	domInv "github.com/tu-usuario/gestion-pos/internal/domain/inventario"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

// LineaSolicitud es una línea de un pedido solicitado: producto y cantidad.
type LineaSolicitud struct {
	ProductoID string
	Cantidad   decimal.Decimal
}

// ReservaInsumoPlan es la porción de un insumo obligatorio a reservar para
// cubrir la parte producible de una línea.
type ReservaInsumoPlan struct {
	InsumoID string
	Cantidad decimal.Decimal
}

// PlanReserva es lo que el motor de reservas moverá para una línea: cuánto
// sale del stock de producto terminado y cuánto de cada insumo obligatorio.
// Solo la porción producible se reserva de insumos, nunca el faltante.
type PlanReserva struct {
	ReservaDeStock decimal.Decimal
	Insumos        []ReservaInsumoPlan
}

// LineaDisponibilidad es el informe de factibilidad de una línea.
type LineaDisponibilidad struct {
	ProductoID          string
	Solicitado          decimal.Decimal
	StockProducto       decimal.Decimal
	ReservadoDeStock    decimal.Decimal
	ProducibleDeInsumos decimal.Decimal
	Faltantes           []domInv.FaltanteInsumo
	Satisfacible        bool
	Plan                PlanReserva
}

// Disponibilidad es el informe completo de un pedido solicitado.
type Disponibilidad struct {
	Lineas           []LineaDisponibilidad
	TodoSatisfacible bool
}

// CalculadoraDisponibilidad calcula, por línea, cuánto puede satisfacerse
// desde stock de producto terminado y cuánto más puede producirse desde
// insumos. Es una función pura del estado de stock y recetas: no muta nada.
type CalculadoraDisponibilidad struct {
	productoRepo repository.ProductoRepository
	catalogo     *recetas.CatalogoRecetas
}

// NewCalculadoraDisponibilidad construye la calculadora.
func NewCalculadoraDisponibilidad(productoRepo repository.ProductoRepository, catalogo *recetas.CatalogoRecetas) *CalculadoraDisponibilidad {
	return &CalculadoraDisponibilidad{productoRepo: productoRepo, catalogo: catalogo}
}

// CalcularDisponibilidad evalúa cada línea solicitada:
//
//  1. Reservable de stock = min(stock del producto, solicitado).
//  2. Si queda un restante, se calcula cuántas unidades alcanza a producir
//     el stock de insumos y se toma min(restante, producibles).
//  3. Los faltantes de insumos obligatorios se calculan contra el restante
//     completo, no contra la porción producible: responden a "¿qué falta si
//     quisiera cubrir todo el restante produciendo?", aun cuando otro insumo
//     de la receta sea el cuello de botella.
//  4. El plan reserva de insumos solo la porción producible.
//
// Una línea con cantidad cero (o negativa) es degenerada: satisfacible, sin
// reserva. TodoSatisfacible es el AND de todas las líneas.
func (c *CalculadoraDisponibilidad) CalcularDisponibilidad(lineas []LineaSolicitud) (*Disponibilidad, error) {
	resultado := &Disponibilidad{
		Lineas:           make([]LineaDisponibilidad, 0, len(lineas)),
		TodoSatisfacible: true,
	}
	for _, linea := range lineas {
		if linea.ProductoID == "" {
			return nil, domain.ErrInvalidInput
		}
		ld, err := c.calcularLinea(linea)
		if err != nil {
			return nil, err
		}
		if !ld.Satisfacible {
			resultado.TodoSatisfacible = false
		}
		resultado.Lineas = append(resultado.Lineas, *ld)
	}
	return resultado, nil
}

func (c *CalculadoraDisponibilidad) calcularLinea(linea LineaSolicitud) (*LineaDisponibilidad, error) {
	producto, err := c.productoRepo.GetByID(linea.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	ld := &LineaDisponibilidad{
		ProductoID:    linea.ProductoID,
		Solicitado:    linea.Cantidad,
		StockProducto: producto.Stock,
		Satisfacible:  true,
	}
	if !linea.Cantidad.GreaterThan(decimal.Zero) {
		return ld, nil
	}

	reservado := decimal.Min(producto.Stock, linea.Cantidad)
	restante := linea.Cantidad.Sub(reservado)
	ld.ReservadoDeStock = reservado
	ld.Plan.ReservaDeStock = reservado

	if restante.GreaterThan(decimal.Zero) {
		lineasReceta, err := c.catalogo.PorProducto(linea.ProductoID)
		if err != nil {
			return nil, err
		}
		producibles := domInv.UnidadesProducibles(lineasReceta)
		ld.ProducibleDeInsumos = decimal.Min(restante, producibles)

		for _, lr := range lineasReceta {
			if !lr.Obligatorio {
				continue
			}
			requerido := lr.CantidadPorUnidad.Mul(restante)
			if requerido.GreaterThan(lr.InsumoStock) {
				ld.Faltantes = append(ld.Faltantes, domInv.FaltanteInsumo{
					InsumoID:  lr.InsumoID,
					Nombre:    lr.InsumoNombre,
					Requerido: requerido,
					Stock:     lr.InsumoStock,
				})
			}
			reserva := lr.CantidadPorUnidad.Mul(ld.ProducibleDeInsumos)
			if reserva.GreaterThan(decimal.Zero) {
				ld.Plan.Insumos = append(ld.Plan.Insumos, ReservaInsumoPlan{
					InsumoID: lr.InsumoID,
					Cantidad: reserva,
				})
			}
		}
	}

	ld.Satisfacible = linea.Cantidad.LessThanOrEqual(producto.Stock.Add(ld.ProducibleDeInsumos))
	return ld, nil
}
