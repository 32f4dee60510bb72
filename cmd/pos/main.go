package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kissaten/cafepos/internal/cart"
	"github.com/kissaten/cafepos/internal/config"
	"github.com/kissaten/cafepos/internal/events"
	"github.com/kissaten/cafepos/internal/httpserver"
	"github.com/kissaten/cafepos/internal/repo"
	"github.com/kissaten/cafepos/internal/service"
	"github.com/kissaten/cafepos/pkg/logging"
	loggingmw "github.com/kissaten/cafepos/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if cfg.SeedCatalog {
		if err := config.SeedCatalog(db); err != nil {
			log.Fatalf("seed error: %v", err)
		}
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	posRepo := &repo.GormRepo{DB: db}
	sessions := cart.NewSessions(cfg.TaxRate)

	catalogService := &service.CatalogService{Repo: posRepo}
	checkoutService := &service.CheckoutService{
		Repo:        posRepo,
		Events:      producer,
		StrictStock: cfg.StrictStock,
	}
	ledgerService := &service.LedgerService{Repo: posRepo, Events: producer}
	receiptService := &service.ReceiptService{Mailer: service.LogMailer{}}

	httpserver.Register(e, &httpserver.Deps{
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogService},
		CartHandler: &httpserver.CartHTTP{
			Sessions: sessions,
			Catalog:  catalogService,
		},
		CheckoutHandler: &httpserver.CheckoutHTTP{
			Sessions: sessions,
			Svc:      checkoutService,
			Receipts: receiptService,
		},
		OrderHandler: &httpserver.OrderHTTP{Svc: ledgerService},
	})

	go func() {
		log.Printf("Starting pos service on port %d...", cfg.ServerPort)
		if err := e.Start(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("producer close: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}

	log.Println("Server stopped")
}
