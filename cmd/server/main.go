package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mytheresa/product-barcode/app/catalog"
	"github.com/mytheresa/product-barcode/app/categories"
	"github.com/mytheresa/product-barcode/app/codes"
	"github.com/mytheresa/product-barcode/app/config"
	"github.com/mytheresa/product-barcode/app/database"
	"github.com/mytheresa/product-barcode/app/logger"
	"github.com/mytheresa/product-barcode/app/metrics"
	"github.com/mytheresa/product-barcode/app/products"
	"github.com/mytheresa/product-barcode/app/server"
	"github.com/mytheresa/product-barcode/barcode"
	"github.com/mytheresa/product-barcode/models"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const serviceName = "product-barcode"

func main() {
	start := time.Now()

	cfg, err := config.Load(serviceName)
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Starting "+serviceName, cfg.LogFields()...)

	m := metrics.New(prometheus.DefaultRegisterer, cfg.Metrics.Prefix)

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Without validation every number is accepted.
	var registry *barcode.Registry
	if cfg.Barcode.Validation {
		registry = barcode.Default()
	}
	validator := barcode.NewValidator(registry, m, log.Named("barcode"))
	log.Info("Barcode validation",
		zap.Bool("enabled", validator.Enabled()),
		zap.Strings("types", validator.Types()))

	handler := server.New(server.Handlers{
		Catalog:    catalog.NewCatalogHandler(models.NewTemplatesRepository(db)),
		Products:   products.NewProductHandler(models.NewProductsRepository(db)),
		Codes:      codes.NewCodeHandler(models.NewCodesRepository(db, validator), validator, m),
		Categories: categories.NewCategoryHandler(models.NewCategoriesRepository(db)),
	}, m, prometheus.DefaultGatherer, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server stopped", zap.Duration("uptime", time.Since(start)))
}
