package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/manuslibros/libros-backend/api/routes"
	"github.com/manuslibros/libros-backend/internal/auth"
	"github.com/manuslibros/libros-backend/internal/books"
	"github.com/manuslibros/libros-backend/internal/orders"
	"github.com/manuslibros/libros-backend/internal/reports"
	"github.com/manuslibros/libros-backend/internal/sellers"
	"github.com/manuslibros/libros-backend/internal/users"
	"github.com/manuslibros/libros-backend/pkg/auth/session"
	"github.com/manuslibros/libros-backend/pkg/config"
	"github.com/manuslibros/libros-backend/pkg/db"
	"github.com/manuslibros/libros-backend/pkg/logger"
	"github.com/manuslibros/libros-backend/pkg/metrics"
	"github.com/manuslibros/libros-backend/pkg/migrate"
	"github.com/manuslibros/libros-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api exited with error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) error {
	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return multierr.Append(err, dbClient.Close())
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return multierr.Append(err, dbClient.Close())
	}
	closeAll := func() error {
		return multierr.Combine(redisClient.Close(), dbClient.Close())
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return multierr.Append(err, closeAll())
	}

	usersRepo := users.NewRepository(dbClient.DB())
	if err := users.EnsureSeedAdmin(ctx, usersRepo, cfg.Seed, cfg.Password, logg); err != nil {
		return multierr.Append(err, closeAll())
	}

	booksRepo := books.NewRepository(dbClient.DB())
	sellersRepo := sellers.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	reportsRepo := reports.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		return multierr.Append(err, closeAll())
	}
	booksService, err := books.NewService(booksRepo)
	if err != nil {
		return multierr.Append(err, closeAll())
	}
	sellersService, err := sellers.NewService(sellersRepo, usersRepo, dbClient, cfg.Password)
	if err != nil {
		return multierr.Append(err, closeAll())
	}
	ordersService, err := orders.NewService(ordersRepo, dbClient, booksRepo, sellersRepo)
	if err != nil {
		return multierr.Append(err, closeAll())
	}
	reportsService, err := reports.NewService(reportsRepo, sellersRepo)
	if err != nil {
		return multierr.Append(err, closeAll())
	}

	router := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		SessionManager: sessionManager,
		HTTPMetrics:    metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
		AuthService:    authService,
		BooksService:   booksService,
		SellersService: sellersService,
		OrdersService:  ordersService,
		ReportsService: reportsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	stopCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		return multierr.Append(err, closeAll())
	case <-stopCtx.Done():
	}

	logg.Info(runCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var errs error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = multierr.Append(errs, err)
	}
	return multierr.Append(errs, closeAll())
}
