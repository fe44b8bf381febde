package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/gestion-pos/internal/application/auth"
	"github.com/tu-usuario/gestion-pos/internal/application/inventario"
	"github.com/tu-usuario/gestion-pos/internal/application/pedidos"
	"github.com/tu-usuario/gestion-pos/internal/application/produccion"
	"github.com/tu-usuario/gestion-pos/internal/application/recetas"
	"github.com/tu-usuario/gestion-pos/internal/application/usecase"
	infrapdf "github.com/tu-usuario/gestion-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/gestion-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/gestion-pos/internal/interfaces/http"
	"github.com/tu-usuario/gestion-pos/pkg/config"
	"github.com/tu-usuario/gestion-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productoRepo := postgres.NewProductoRepository(pool)
	insumoRepo := postgres.NewInsumoRepository(pool)
	recetaRepo := postgres.NewRecetaRepository(pool)
	movInvRepo := postgres.NewMovimientoInventarioRepository(pool)
	movInsRepo := postgres.NewMovimientoInsumoRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	produccionRepo := postgres.NewProduccionRepository(pool)
	perdidaRepo := postgres.NewPerdidaRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	refRepo := postgres.NewReferenciaRepository(pool)

	// Núcleo de inventario: libro de movimientos, catálogo de recetas y los
	// motores que operan sobre ellos.
	libro := inventario.NewLibroStock(productoRepo, insumoRepo, movInvRepo, movInsRepo, refRepo)
	catalogo := recetas.NewCatalogoRecetas(recetaRepo)
	calculadora := pedidos.NewCalculadoraDisponibilidad(productoRepo, catalogo)
	motorReservas := pedidos.NewMotorReservas(calculadora, libro, catalogo, pedidoRepo, refRepo)
	motorProd := produccion.NewMotorProduccion(catalogo, libro, produccionRepo, productoRepo)

	productoUC := usecase.NewProductoUseCase(productoRepo)
	insumoUC := usecase.NewInsumoUseCase(insumoRepo, libro)
	recetaUC := usecase.NewRecetaUseCase(recetaRepo, productoRepo, insumoRepo, catalogo)
	perdidaUC := usecase.NewPerdidaUseCase(perdidaRepo, libro)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo)

	// PDF: comprobante de venta para el cliente
	pdfGenerator := infrapdf.NewComprobanteGenerator(cfg.App.Name)
	ventaUC := usecase.NewVentaUseCase(ventaRepo, productoRepo, libro, pdfGenerator)

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductoUC:    productoUC,
		InsumoUC:      insumoUC,
		RecetaUC:      recetaUC,
		PerdidaUC:     perdidaUC,
		VentaUC:       ventaUC,
		ProveedorUC:   proveedorUC,
		MotorReservas: motorReservas,
		Calculadora:   calculadora,
		MotorProd:     motorProd,
		Libro:         libro,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
