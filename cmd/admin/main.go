package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	cfg "github.com/bookeasy/admin-backend/config"
	"github.com/bookeasy/admin-backend/internal/core/ports"
	"github.com/bookeasy/admin-backend/internal/handlers"
	"github.com/bookeasy/admin-backend/internal/payments/clients"
	"github.com/bookeasy/admin-backend/internal/usecases"
	"github.com/bookeasy/admin-backend/internal/usecases/repository"
	"github.com/bookeasy/admin-backend/internal/workers"
	"github.com/bookeasy/admin-backend/pkg/database"
)

// Server timeout constants.
const (
	readTimeoutSeconds     = 15
	writeTimeoutSeconds    = 15
	idleTimeoutSeconds     = 60
	shutdownTimeoutSeconds = 5
)

func main() {
	time.Local = time.UTC

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config, err := cfg.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	opts := &slog.HandlerOptions{
		Level: config.Log.Level,
	}
	if config.App.Debug {
		opts.Level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	logger.Info("Starting application with configuration",
		"environment", config.App.Environment,
		"debug", config.App.Debug,
		"server_port", config.HTTP.Port,
		"orders_window_limit", config.Workers.OrdersWindowLimit)

	ctx := context.Background()

	migrationsPath := "./migrations"
	if workDir, err := os.Getwd(); err == nil {
		if _, err := os.Stat(filepath.Join(workDir, "migrations")); !os.IsNotExist(err) {
			migrationsPath = filepath.Join(workDir, "migrations")
		} else if _, err := os.Stat(filepath.Join(workDir, "..", "migrations")); !os.IsNotExist(err) {
			migrationsPath = filepath.Join(workDir, "..", "migrations")
		}
	}

	pg, err := database.New(config,
		database.MaxPoolSize(config.DB.PoolMax),
		database.ConnTimeout(config.DB.ConnectTimeout),
		database.HealthCheckPeriod(config.DB.HealthCheckPeriod),
		database.Isolation(pgx.ReadCommitted),
	)
	if err != nil {
		logger.Error("postgres connection failed", slog.String("error", err.Error()))
		return
	}
	defer pg.Close()

	logger.Info("Running database migrations", "path", migrationsPath)
	if err = database.RunMigrations(logger, config.DB.DatabaseURL, migrationsPath); err != nil {
		logger.Error("Failed to run database migrations", "error", err)
		log.Fatal(err)
	}

	// Create repositories
	bookingsRepository := repository.NewBookingsRepository(logger, pg)
	catalogRepository := repository.NewCatalogRepository(logger, pg)
	assetsRepository := repository.NewAssetsRepository(logger, pg)
	paymentsRepository := repository.NewPaymentsRepository(logger, pg)

	// Create services
	orderService := usecases.NewOrderService(bookingsRepository, config.Workers.OrdersWindowLimit)
	catalogService := usecases.NewCatalogService(catalogRepository)
	assetService := usecases.NewAssetService(assetsRepository, config.Storage.PublicBaseURL)

	razorpayClient := clients.NewRazorpayClient(logger, config.Razorpay.KeyID, config.Razorpay.KeySecret, config.Razorpay.APIURL)
	paymentService := usecases.NewPaymentService(logger, razorpayClient, paymentsRepository)

	// Create handlers
	websocketManager := handlers.NewWebSocketManager(logger)
	orderService.AddRefreshListener(websocketManager)

	httpHandler, wsHandler := initHandlers(logger, orderService, catalogService, paymentService, assetService, websocketManager)

	initAndRunWorkers(ctx, logger, config, orderService)

	// Create router
	router := mux.NewRouter()

	// Register WebSocket routes before HTTP routes
	wsHandler.RegisterRoutes(router)
	httpHandler.RegisterRoutes(router)

	// Configure CORS. The payment endpoint's preflight contract (open
	// origin, JSON POST) is answered here.
	c := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:       []string{"Content-Type", "Authorization", "X-Client-Info", "Apikey"},
		OptionsSuccessStatus: http.StatusOK,
	})

	handler := c.Handler(router)

	server := &http.Server{
		Addr:         ":" + config.HTTP.Port,
		Handler:      handler,
		ReadTimeout:  readTimeoutSeconds * time.Second,
		WriteTimeout: writeTimeoutSeconds * time.Second,
		IdleTimeout:  idleTimeoutSeconds * time.Second,
	}

	go func() {
		logger.Info("Starting server", "address", server.Addr)
		if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeoutSeconds*time.Second)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return
	}

	logger.Info("Server exited properly")
}

func initHandlers(
	logger *slog.Logger,
	orderService ports.OrderService,
	catalogService ports.CatalogService,
	paymentService ports.PaymentService,
	assetService ports.AssetService,
	websocketManager *handlers.Manager,
) (*handlers.HTTPHandler, *handlers.WebSocketHandler) {
	httpHandler := handlers.NewHTTPHandler(logger, orderService, catalogService, paymentService, assetService)
	wsHandler := handlers.NewWebSocketHandler(logger, websocketManager)

	return httpHandler, wsHandler
}

func initAndRunWorkers(ctx context.Context, logger *slog.Logger, config *cfg.Config, orderService ports.OrderService) {
	refresher := workers.NewWindowRefresher(logger, orderService,
		time.Duration(config.Workers.OrdersRefreshInterval)*time.Minute)

	// Start the background window refresher
	go func() {
		refresher.Start(ctx)
	}()

	logger.Info("All workers initialized and started")
}
