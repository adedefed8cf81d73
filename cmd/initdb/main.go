// Command initdb creates the warehouse tables and seeds the administrator
// account. Running it again leaves existing tables and rows untouched.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"warehouse-be/internal/config"
	"warehouse-be/internal/db"
	"warehouse-be/internal/logger"
	"warehouse-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		logger.L().Fatal("initdb failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	database, err := db.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.InitializeSchema(ctx, database); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	fmt.Fprintf(out, "schema ready (%s): %v\n", database.DriverName(), db.Tables)

	if cfg.AdminPassword == "" {
		fmt.Fprintln(out, "ADMIN_PASSWORD is not set, administrator not seeded")
		return nil
	}

	users := user.NewService(user.NewRepository(database), false, user.TokenConfig{})
	created, err := users.EnsureAdministrator(ctx, cfg.AdminLogin, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed administrator: %w", err)
	}
	if created {
		fmt.Fprintf(out, "administrator %q created\n", cfg.AdminLogin)
	} else {
		fmt.Fprintf(out, "administrator %q already present\n", cfg.AdminLogin)
	}
	return nil
}
