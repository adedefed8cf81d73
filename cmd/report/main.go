// Command report writes one of the warehouse spreadsheets straight from the
// database, without going through the HTTP server.
//
//	report -kind stock -out stock.xlsx
//	report -kind orders -out orders.xlsx
//	report -kind receipt -user 7 -out receipt.xlsx
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"warehouse-be/internal/config"
	"warehouse-be/internal/db"
	"warehouse-be/internal/history"
	"warehouse-be/internal/logger"
	"warehouse-be/internal/order"
	"warehouse-be/internal/product"
	"warehouse-be/internal/report"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logger.L().Fatal("report failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(out)
	kind := fs.String("kind", "stock", "report to build: stock, orders or receipt")
	userID := fs.Int64("user", 0, "customer id for the receipt report")
	path := fs.String("out", "", "output .xlsx file (defaults to <kind>.xlsx)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		*path = *kind + ".xlsx"
	}
	if *kind == "receipt" && *userID <= 0 {
		return errors.New("-user is required for the receipt report")
	}

	database, err := db.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	orders := order.NewService(order.NewRepository(database))
	products := product.NewService(
		product.NewRepository(database),
		history.NewService(history.NewRepository(database)),
	)
	reports := report.NewService(products, orders, cfg.CurrencySuffix)

	var f *excelize.File
	switch *kind {
	case "stock":
		f, err = reports.Stock(ctx)
	case "orders":
		f, err = reports.Orders(ctx)
	case "receipt":
		f, err = reports.Receipt(ctx, *userID)
	default:
		return fmt.Errorf("unknown report kind %q", *kind)
	}
	if err != nil {
		return err
	}

	// Save closes f.
	if err := report.Save(f, *path); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s report written to %s\n", *kind, *path)
	return nil
}
