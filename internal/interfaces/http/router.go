package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pos/internal/application/auth"
	"github.com/tu-usuario/gestion-pos/internal/application/inventario"
	"github.com/tu-usuario/gestion-pos/internal/application/pedidos"
	"github.com/tu-usuario/gestion-pos/internal/application/produccion"
	"github.com/tu-usuario/gestion-pos/internal/application/usecase"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductoUC     *usecase.ProductoUseCase
	InsumoUC       *usecase.InsumoUseCase
	RecetaUC       *usecase.RecetaUseCase
	PerdidaUC      *usecase.PerdidaUseCase
	VentaUC        *usecase.VentaUseCase
	ProveedorUC    *usecase.ProveedorUseCase
	MotorReservas  *pedidos.MotorReservas
	Calculadora    *pedidos.CalculadoraDisponibilidad
	MotorProd      *produccion.MotorProduccion
	Libro          *inventario.LibroStock
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	soloAdmin := RequireRole(entity.RolAdmin)

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Delete("/:id", soloAdmin, productoHandler.Desactivar)

	// Receta del producto
	recetaHandler := NewRecetaHandler(deps.RecetaUC)
	productos.Get("/:id/receta", recetaHandler.Listar)
	productos.Post("/:id/receta", recetaHandler.Guardar)
	productos.Delete("/:id/receta", soloAdmin, recetaHandler.Vaciar)
	protected.Delete("/recetas/:lineaId", soloAdmin, recetaHandler.EliminarLinea)

	// Insumos
	insumos := protected.Group("/insumos")
	insumoHandler := NewInsumoHandler(deps.InsumoUC)
	insumos.Post("/", insumoHandler.Create)
	insumos.Get("/", insumoHandler.List)
	insumos.Get("/:id", insumoHandler.GetByID)
	insumos.Put("/:id", insumoHandler.Update)
	insumos.Delete("/:id", soloAdmin, insumoHandler.Desactivar)
	insumos.Post("/:id/compras", insumoHandler.RegistrarCompra)
	insumos.Post("/:id/ajustes", insumoHandler.AjustarStock)

	// Historial de movimientos
	movimientoHandler := NewMovimientoHandler(deps.Libro)
	productos.Get("/:id/movimientos", movimientoHandler.ListByProducto)
	insumos.Get("/:id/movimientos", movimientoHandler.ListByInsumo)

	// Pedidos con reserva de stock
	pedidosGroup := protected.Group("/pedidos")
	pedidoHandler := NewPedidoHandler(deps.MotorReservas, deps.Calculadora)
	pedidosGroup.Post("/disponibilidad", pedidoHandler.Disponibilidad)
	pedidosGroup.Post("/", pedidoHandler.Crear)
	pedidosGroup.Get("/", pedidoHandler.List)
	pedidosGroup.Get("/:id", pedidoHandler.GetByID)
	pedidosGroup.Put("/:id/lineas", pedidoHandler.AjustarLineas)
	pedidosGroup.Post("/:id/cancelar", pedidoHandler.Cancelar)

	// Producción
	producciones := protected.Group("/producciones")
	produccionHandler := NewProduccionHandler(deps.MotorProd)
	producciones.Post("/", produccionHandler.Producir)
	producciones.Get("/", produccionHandler.List)
	producciones.Get("/:id", produccionHandler.GetByID)

	// Pérdidas
	perdidas := protected.Group("/perdidas")
	perdidaHandler := NewPerdidaHandler(deps.PerdidaUC)
	perdidas.Post("/", perdidaHandler.Registrar)
	perdidas.Get("/", perdidaHandler.List)
	perdidas.Get("/:id", perdidaHandler.GetByID)
	perdidas.Put("/:id", perdidaHandler.Actualizar)
	perdidas.Delete("/:id", soloAdmin, perdidaHandler.Eliminar)

	// Ventas de mostrador
	ventas := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentaUC)
	ventas.Post("/", ventaHandler.Registrar)
	ventas.Get("/", ventaHandler.List)
	ventas.Get("/:id", ventaHandler.GetByID)
	ventas.Get("/:id/comprobante", ventaHandler.Comprobante)

	// Proveedores
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", proveedorHandler.Create)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Put("/:id", proveedorHandler.Update)
	proveedores.Delete("/:id", soloAdmin, proveedorHandler.Desactivar)
}
