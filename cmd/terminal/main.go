package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eltech/pos-terminal/internal/application/service"
	"github.com/eltech/pos-terminal/internal/config"
	"github.com/eltech/pos-terminal/internal/infrastructure/backend"
	"github.com/eltech/pos-terminal/internal/presentation/http/handler"
	"github.com/eltech/pos-terminal/internal/presentation/http/routes"
	"github.com/eltech/pos-terminal/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up structured logging
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Backend inventory gateway
	tokens := backend.NewTokenSource(
		cfg.Backend.Token,
		cfg.Backend.RefreshToken,
		cfg.Backend.RefreshURL,
		nil,
	)
	inventory := backend.NewClient(cfg.Backend.BaseURL, tokens, cfg.Backend.RequestTimeout, log)

	// Thermal printer
	thermalPrinter, err := printer.FromConfig(printer.Config{
		Type:       cfg.Printer.Type,
		DevicePath: cfg.Printer.USBPath,
		Address:    cfg.Printer.Address,
	})
	if err != nil {
		log.WithError(err).Warn("failed to initialize printer, receipts will not print")
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	feed := service.NewNotificationFeed(0)
	catalogService := service.NewCatalogService(inventory, log)
	cartService := service.NewCartService(catalogService, feed, log)
	receiptService := service.NewReceiptService(thermalPrinter, service.ReceiptProfile{
		StoreName:  cfg.Business.Name,
		Address:    cfg.Business.Address,
		Phone:      cfg.Business.Phone,
		TaxID:      cfg.Business.TaxID,
		Cashier:    cfg.Business.Cashier,
		Currency:   cfg.Business.Currency,
		PaperWidth: cfg.Printer.PaperWidth,
	}, feed, log)
	checkoutService := service.NewCheckoutService(
		cartService,
		catalogService,
		inventory,
		receiptService,
		feed,
		log,
		cfg.Checkout.SubmitTimeout,
	)

	// Load the catalog before serving; a failure is not fatal since the
	// auto-refresh loop keeps retrying.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := catalogService.Refresh(ctx); err != nil {
		log.WithError(err).Warn("initial catalog fetch failed, retrying in background")
	}
	catalogService.StartAutoRefresh(ctx, cfg.Catalog.RefreshInterval)

	// Initialize handlers
	handlers := &routes.Handlers{
		Catalog:      handler.NewCatalogHandler(catalogService),
		Cart:         handler.NewCartHandler(cartService, checkoutService),
		Checkout:     handler.NewCheckoutHandler(checkoutService),
		Receipt:      handler.NewReceiptHandler(receiptService),
		Notification: handler.NewNotificationHandler(feed),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg: cfg,
		Log: log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.WithFields(logrus.Fields{
		"port": port,
		"env":  cfg.App.Env,
	}).Infof("Starting %s", cfg.App.Name)

	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
		os.Exit(1)
	}
}
