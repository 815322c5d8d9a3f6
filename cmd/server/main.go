package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/arshprem01/flower-eCommerce/internal/cart"
	"github.com/arshprem01/flower-eCommerce/internal/catalog"
	"github.com/arshprem01/flower-eCommerce/internal/config"
	"github.com/arshprem01/flower-eCommerce/internal/events"
	"github.com/arshprem01/flower-eCommerce/internal/httpserver"
	"github.com/arshprem01/flower-eCommerce/internal/kvstore"
	"github.com/arshprem01/flower-eCommerce/internal/logging"
	"github.com/arshprem01/flower-eCommerce/internal/search"
	"github.com/arshprem01/flower-eCommerce/internal/session"
)

func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	switch {
	case cfg.DatabaseURL != "":
		return kvstore.OpenPostgres(ctx, cfg.DatabaseURL)
	case cfg.RedisURL != "":
		return kvstore.OpenRedis(ctx, cfg.RedisURL)
	default:
		return kvstore.OpenSQLite(cfg.SQLitePath)
	}
}

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "flowershop")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("store open: %v", err)
	}

	catalogSvc := catalog.New(store)
	cartSvc := cart.New(store)

	sessionSvc, err := session.New(context.Background(), store, cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		log.Fatalf("session init: %v", err)
	}

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer(cfg.KafkaAddress, cfg.KafkaTopic)
	}

	searchSvc := &search.Service{Catalog: catalogSvc, Index: cfg.ESIndex}
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		searchSvc.ES = esClient
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(httpserver.RequestLogger(logger))
	e.Use(echomw.CORS())

	jwtSecret := []byte(cfg.JWTSecret)

	httpserver.Register(e, &httpserver.Deps{
		ProductHandler: &httpserver.ProductHandler{Catalog: catalogSvc, Search: searchSvc, Producer: producer},
		CartHandler:    &httpserver.CartHandler{Cart: cartSvc, Catalog: catalogSvc},
		AuthHandler:    &httpserver.AuthHandler{Svc: sessionSvc, JWTSecret: jwtSecret},
		Session:        sessionSvc,
		JWTSecret:      jwtSecret,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("flowershop listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if closer, ok := store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Printf("store close error: %v", err)
		}
	}
	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
