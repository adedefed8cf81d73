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

	"warehouse-be/internal/config"
	"warehouse-be/internal/db"
	"warehouse-be/internal/history"
	"warehouse-be/internal/logger"
	"warehouse-be/internal/middleware"
	"warehouse-be/internal/order"
	"warehouse-be/internal/product"
	"warehouse-be/internal/report"
	"warehouse-be/internal/transport"
	"warehouse-be/internal/user"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	database, err := db.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.InitializeSchema(ctx, database); err != nil {
		return err
	}

	handler, err := setupRouter(ctx, cfg, database)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupRouter wires repositories and services over database and seeds the
// administrator account.
func setupRouter(ctx context.Context, cfg *config.Config, database *sqlx.DB) (http.Handler, error) {
	if cfg.BootstrapBypass {
		logger.L().Warn("bootstrap credential bypass is enabled", zap.String("login", "admin"))
	}

	users := user.NewService(
		user.NewRepository(database),
		cfg.BootstrapBypass,
		user.TokenConfig{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL},
	)
	if cfg.AdminPassword == "" {
		logger.L().Warn("ADMIN_PASSWORD is not set, administrator account not seeded")
	} else if _, err := users.EnsureAdministrator(ctx, cfg.AdminLogin, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("failed to seed administrator: %w", err)
	}

	ledger := history.NewService(history.NewRepository(database))
	products := product.NewService(product.NewRepository(database), ledger)
	orders := order.NewService(order.NewRepository(database))

	return transport.NewRouter(transport.Deps{
		DB:            database,
		Users:         users,
		Products:      products,
		Orders:        orders,
		History:       ledger,
		Reports:       report.NewService(products, orders, cfg.CurrencySuffix),
		Limiter:       middleware.NewRateLimiter(ctx, cfg.InternalSecretKey),
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.JWTTTL,
		SecureCookies: cfg.AppEnv == "production",
	}), nil
}
