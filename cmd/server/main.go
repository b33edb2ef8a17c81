// @title ticketscan API
// @version 1.0
// @description Receipt OCR structuring and license activation service.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "ticketscan/docs"
	"ticketscan/internal/config"
	"ticketscan/internal/generation"
	_ "ticketscan/internal/generation/claude"
	_ "ticketscan/internal/generation/cohere"
	_ "ticketscan/internal/generation/gemini"
	_ "ticketscan/internal/generation/openai"
	"ticketscan/internal/handler"
	"ticketscan/internal/logger"
	"ticketscan/internal/repair"
	"ticketscan/internal/repository/sqlstore"
	"ticketscan/internal/router"
	"ticketscan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ticketscan: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// A local SQLite store is created on first start.
	if cfg.DB.Driver == config.DriverSQLite {
		if err := sqlstore.MigrateUp(&cfg.DB); err != nil {
			return fmt.Errorf("failed to migrate sqlite store: %w", err)
		}
	}

	db, err := sqlstore.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	licenseRepo := sqlstore.NewLicenseRepo(db)

	// Initialize generation and the reply pipeline
	gen, err := generation.NewFromConfig(&cfg.Generation, log)
	if err != nil {
		return fmt.Errorf("failed to initialize text generation: %w", err)
	}
	fallbacks, err := repair.FallbackChain(cfg.Repair.Fallbacks)
	if err != nil {
		return fmt.Errorf("invalid repair fallbacks: %w", err)
	}
	pipeline := repair.NewPipeline(
		repair.WithFallbacks(fallbacks),
		repair.WithSchemaCheck(cfg.Repair.SchemaCheck),
		repair.WithLogger(log.Named("repair")),
	)
	log.Info("repair pipeline ready",
		zap.Strings("stages", pipeline.Chain().Names()),
		zap.Strings("fallbacks", fallbacks.Names()),
		zap.Bool("schema_check", cfg.Repair.SchemaCheck),
	)
	if cfg.Admin.PasswordHash == "" {
		log.Warn("admin password hash not set, admin routes are disabled")
	}

	// Initialize services
	adminSvc := service.NewAdminService(cfg.Admin)
	licenseSvc := service.NewLicenseService(licenseRepo, cfg.License, log.Named("license"))
	receiptSvc := service.NewReceiptService(gen, pipeline, cfg.Generation.Timeout(), log.Named("receipt"))

	// Initialize handlers
	adminH := handler.NewAdminHandler(adminSvc)
	licenseH := handler.NewLicenseHandler(licenseSvc)
	receiptH := handler.NewReceiptHandler(receiptSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(log, cfg.CORS, adminSvc, adminH, licenseH, receiptH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
