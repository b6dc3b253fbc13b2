package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rookgm/gopherstore/config"
	"github.com/rookgm/gopherstore/internal/auth"
	"github.com/rookgm/gopherstore/internal/cache"
	"github.com/rookgm/gopherstore/internal/events"
	"github.com/rookgm/gopherstore/internal/gateway"
	handler "github.com/rookgm/gopherstore/internal/handler/http"
	"github.com/rookgm/gopherstore/internal/journal"
	"github.com/rookgm/gopherstore/internal/logger"
	"github.com/rookgm/gopherstore/internal/middleware"
	"github.com/rookgm/gopherstore/internal/repository"
	"github.com/rookgm/gopherstore/internal/repository/postgres"
	"github.com/rookgm/gopherstore/internal/service"
	"github.com/rookgm/gopherstore/internal/worker"
	"go.uber.org/zap"
)

const (
	serviceName     = "gopherstore"
	shutdownTimeout = 10 * time.Second
	relayBatchSize  = 100
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error loading .env: %v", err)
	}

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	gwCfg, err := config.NewGatewayConfig()
	if err != nil {
		log.Fatalf("Error loading gateway config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	zl := logger.Log
	defer zl.Sync()

	if cfg.JWTSecret == "" {
		zl.Fatal("JWT secret is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		zl.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		zl.Fatal("Error migrating database", zap.Error(err))
	}

	captures, err := journal.New(cfg.JournalPath)
	if err != nil {
		zl.Fatal("Error opening capture journal", zap.Error(err))
	}
	defer captures.Close()

	token := auth.NewAuthToken([]byte(cfg.JWTSecret))
	gw := gateway.NewClient(gwCfg.URL(), gwCfg.MerchantID, gwCfg.PublicKey, gwCfg.PrivateKey, gwCfg.Timeout)

	// replay cache is optional
	var replayCache service.ReplayCache
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr, serviceName)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			zl.Warn("Redis is unreachable, replay falls back to database", zap.Error(err))
		}
		replayCache = rc
	}

	// dependency injection
	// repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	// user
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)

	// auth
	authService := service.NewAuthService(userRepo, token)
	authHandler := handler.NewAuthHandler(authService)

	// catalog
	catalogHandler := handler.NewCatalogHandler(service.NewCatalogService(productRepo))

	// checkout
	checkoutService := service.NewCheckoutService(productRepo, orderRepo, gw, captures, replayCache)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)

	// order
	orderHandler := handler.NewOrderHandler(service.NewOrderService(orderRepo))

	// background processing
	var relay worker.Relay
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		publisher := events.NewKafkaPublisher(strings.Join(brokers, ","), cfg.KafkaTopic, zl)
		defer publisher.Close()
		relay = service.NewEventRelay(outboxRepo, publisher)
	}
	processor := worker.NewOrderProcessor(
		service.NewReconcileService(orderRepo, captures),
		relay,
		worker.Settings{
			Interval:       cfg.ReconcileInterval,
			ReservationTTL: cfg.ReservationTTL,
			BatchSize:      relayBatchSize,
		},
	)
	go processor.ProcessOrders(ctx)

	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(middleware.Logging(zl))
	router.Use(chimw.Recoverer)

	router.Post("/auth/register", userHandler.RegisterUser())
	router.Post("/auth/login", authHandler.LoginUser())
	router.Get("/products/{productId}", catalogHandler.GetProduct())
	router.Get("/categories/{slug}/products", catalogHandler.ListCategoryProducts())
	router.Get("/health", handler.Health(db))

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(handler.AuthMiddleware(token))
		group.Get("/checkout/token", checkoutHandler.ClientToken())
		group.Post("/checkout", checkoutHandler.PlaceOrder())
		group.Get("/orders", orderHandler.ListUserOrders())

		// routes that require admin role
		group.Group(func(admin chi.Router) {
			admin.Use(handler.RequireAdmin(userService))
			admin.Get("/orders/all", orderHandler.ListAllOrders())
			admin.Patch("/orders/{orderId}/status", orderHandler.UpdateOrderStatus())
		})
	})

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			zl.Error("Error shutting down server", zap.Error(err))
		}
	}()

	zl.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("Error starting server", zap.Error(err))
	}

	zl.Info("Server stopped")
}
