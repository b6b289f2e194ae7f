package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sangkips/produce-store-api/internal/application/service"
	"github.com/sangkips/produce-store-api/internal/config"
	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/infrastructure/repository"
	"github.com/sangkips/produce-store-api/internal/infrastructure/seed"
	"github.com/sangkips/produce-store-api/internal/presentation/http/handler"
	"github.com/sangkips/produce-store-api/internal/presentation/http/middleware"
	"github.com/sangkips/produce-store-api/internal/presentation/http/routes"
	"github.com/sangkips/produce-store-api/pkg/logger"
	"github.com/sangkips/produce-store-api/pkg/printer"
	"github.com/sangkips/produce-store-api/pkg/telemetry"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const (
	draftJanitorInterval = time.Minute
	draftTTL             = 2 * time.Hour
	idempotencyPurge     = time.Hour
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.Env, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     version,
	})
	if err != nil {
		zlog.Fatal("failed to initialize telemetry", zap.Error(err))
	}

	// Initialize repositories
	var products []entity.Product
	var boletas []entity.Boleta
	if cfg.App.SeedData {
		products = seed.DefaultProducts()
		boletas = seed.DefaultBoletas()
	}
	productRepo := repository.NewProductRepository(products...)
	boletaRepo := repository.NewBoletaRepository(boletas...)
	draftRepo := repository.NewDraftRepository()
	idempotencyRepo := repository.NewIdempotencyRepository()

	// Initialize services
	productService := service.NewProductService(productRepo, zlog)
	boletaService, err := service.NewBoletaService(boletaRepo, productRepo, zlog, otel.Meter("github.com/sangkips/produce-store-api"))
	if err != nil {
		zlog.Fatal("failed to create boleta service", zap.Error(err))
	}
	draftService := service.NewDraftService(draftRepo, productRepo, boletaRepo, boletaService, zlog)
	dashboardService := service.NewDashboardService(productRepo, boletaRepo, draftRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:      cfg.Printer.Type,
		USBPath:   cfg.Printer.USBPath,
		Address:   cfg.Printer.Address,
		CharWidth: cfg.Printer.CharWidth,
	})
	if err != nil {
		zlog.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	printerService := service.NewPrinterService(thermalPrinter, boletaRepo, entity.ReceiptHeader{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
		Phone:     cfg.Store.Phone,
		TaxID:     cfg.Store.TaxID,
	}, cfg.Printer.CharWidth, zlog)

	go draftService.RunJanitor(ctx, draftJanitorInterval, draftTTL)
	go middleware.PurgeExpiredKeys(ctx, idempotencyRepo, idempotencyPurge, zlog)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:   handler.NewProductHandler(productService, cfg.Import.MaxSize),
		Boleta:    handler.NewBoletaHandler(boletaService),
		Draft:     handler.NewDraftHandler(draftService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(ctx, handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Log:             zlog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env),
			zap.String("printer", thermalPrinter.Type()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			zlog.Error("server failed", zap.Error(err))
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		zlog.Error("telemetry shutdown failed", zap.Error(err))
	}
	zlog.Info("server stopped")
}
