package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/estoque-ti/internal/application/analytics"
	"github.com/jhoicas/estoque-ti/internal/application/auth"
	"github.com/jhoicas/estoque-ti/internal/application/inventory"
	"github.com/jhoicas/estoque-ti/internal/application/notification"
	"github.com/jhoicas/estoque-ti/internal/application/state"
	"github.com/jhoicas/estoque-ti/internal/application/usecase"
	"github.com/jhoicas/estoque-ti/internal/application/view"
	"github.com/jhoicas/estoque-ti/internal/domain/repository"
	"github.com/jhoicas/estoque-ti/internal/infrastructure/email"
	"github.com/jhoicas/estoque-ti/internal/infrastructure/export"
	"github.com/jhoicas/estoque-ti/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/estoque-ti/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-ti/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-ti/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/estoque-ti/internal/interfaces/http"
	"github.com/jhoicas/estoque-ti/pkg/config"
	"github.com/jhoicas/estoque-ti/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// gateway agrupa los puertos de datos del driver elegido.
type gateway struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	shipments repository.ShipmentRepository
	branches  repository.BranchRepository
	txRunner  inventory.TxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	defer log.Close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("gateway", cfg.Gateway.Driver).
		Str("email", cfg.Email.Driver).
		Msg("iniciando aplicação")

	ctx := context.Background()
	gw, err := openGateway(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o gateway de dados")
	}
	defer gw.close()

	zl := log.Zerolog()
	loc := cfg.App.Location()

	cache := state.NewCache(gw.products, gw.movements, gw.branches, gw.shipments, loc)
	if err := cache.Reload(ctx); err != nil {
		// La consola arranca vacía; la próxima acción o el cron vuelven a intentar.
		log.Error().Err(err).Msg("carga inicial do snapshot")
	}

	renderer, err := view.NewRenderer(cache, cfg.Dashboard.Widgets)
	if err != nil {
		log.Fatal().Err(err).Msg("DASHBOARD_WIDGETS")
	}

	dispatcher := notification.NewDispatcher(newSender(cfg.Email, zl), zl)
	registerMovementUC := inventory.NewRegisterMovementUseCase(gw.txRunner, gw.products, gw.shipments, dispatcher, cache, zl)
	shipmentUC := inventory.NewShipmentUseCase(gw.shipments, gw.movements, cache, zl)
	productUC := usecase.NewProductUseCase(gw.products, gw.txRunner, cache, zl)
	reportUC := analytics.NewReportUseCase(cache, loc,
		export.NewXLSXExporter(),
		export.NewCSVExporter(),
		infrapdf.NewMarotoReportExporter(cfg.App.Name),
	)
	authUC := auth.NewAuthUseCase(
		auth.Credentials{Username: cfg.Auth.Username, PasswordHash: cfg.Auth.PasswordHash},
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	)
	if cfg.Auth.PasswordHash == "" {
		log.Warn().Msg("AUTH_PASSWORD_HASH vazio: nenhum login será aceito")
	}

	var sched *scheduler.Scheduler
	if cfg.Refresh.Cron != "" {
		sched, err = scheduler.New(cfg.Refresh.Cron, loc, cache, zl)
		if err != nil {
			log.Fatal().Err(err).Msg("REFRESH_CRON")
		}
		sched.Start()
		log.Info().Str("cron", cfg.Refresh.Cron).Msg("recarga periódica habilitada")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Estoque TI API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger desabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		ShipmentUC:       shipmentUC,
		ReportUC:         reportUC,
		Renderer:         renderer,
		Refresher:        cache,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

func openGateway(ctx context.Context, cfg *config.Config) (*gateway, error) {
	if cfg.Gateway.Driver == config.GatewayMemory {
		store := memory.NewStore()
		return &gateway{
			products:  store.Products(),
			movements: store.Movements(),
			shipments: store.Shipments(),
			branches:  store.Branches(),
			txRunner:  memory.NewTxRunner(store),
			close:     func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		return nil, err
	}
	return &gateway{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		shipments: postgres.NewShipmentRepository(pool),
		branches:  postgres.NewBranchRepository(pool),
		txRunner:  postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

func newSender(cfg config.EmailConfig, log zerolog.Logger) notification.Sender {
	switch cfg.Driver {
	case config.EmailEmailJS:
		return email.NewEmailJSSender(email.EmailJSConfig{
			BaseURL:    cfg.EmailJSURL,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
		})
	case config.EmailSMTP:
		return email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	default:
		return email.NewNoopSender(log)
	}
}
