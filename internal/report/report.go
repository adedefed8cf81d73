// Package report renders stock, order and receipt spreadsheets.
package report

import (
	"context"
	"fmt"
	"io"

	"warehouse-be/internal/apperror"
	"warehouse-be/internal/logger"
	"warehouse-be/internal/order"
	"warehouse-be/internal/product"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	SheetStock   = "Stock"
	SheetOrders  = "Orders"
	SheetSummary = "Summary"
	SheetTotal   = "Total"
	SheetReceipt = "Receipt"

	defaultSheet = "Sheet1"
)

var ErrNothingToReport = apperror.NotFound("nothing to report")

type ProductLister interface {
	List(ctx context.Context) ([]product.Product, error)
}

type OrderLister interface {
	List(ctx context.Context) ([]order.Line, error)
	ListForUser(ctx context.Context, userID int64) ([]order.Line, error)
}

type Service interface {
	Stock(ctx context.Context) (*excelize.File, error)
	Orders(ctx context.Context) (*excelize.File, error)
	Receipt(ctx context.Context, userID int64) (*excelize.File, error)
}

type service struct {
	products ProductLister
	orders   OrderLister
	suffix   string
}

func NewService(products ProductLister, orders OrderLister, currencySuffix string) Service {
	return &service{products: products, orders: orders, suffix: currencySuffix}
}

func (s *service) money(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", d.StringFixed(2), s.suffix)
}

func (s *service) Stock(ctx context.Context) (*excelize.File, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNothingToReport
	}

	rows := make([][]interface{}, 0, len(products))
	total := decimal.Zero
	for _, p := range products {
		line := lineValue(p.Price, p.Quantity)
		total = total.Add(line)
		rows = append(rows, []interface{}{p.ID, p.Name, p.Weight, p.Price, p.Quantity, line.StringFixed(2)})
	}

	f := excelize.NewFile()
	err = writeTable(f, SheetStock, []interface{}{"ID", "Name", "Weight", "Price", "Quantity", "Line total"}, rows)
	if err == nil {
		err = addTotalSheet(f, "Total value of all stock", s.money(total))
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	logger.FromCtx(ctx).Info("stock report built", zap.Int("products", len(products)), zap.String("total", total.StringFixed(2)))
	return f, nil
}

type summaryKey struct {
	user    string
	product string
}

type summaryRow struct {
	quantity int64
	amount   decimal.Decimal
}

func (s *service) Orders(ctx context.Context) (*excelize.File, error) {
	lines, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNothingToReport
	}

	var (
		rows    = make([][]interface{}, 0, len(lines))
		total   = decimal.Zero
		keys    []summaryKey
		grouped = map[summaryKey]*summaryRow{}
	)
	for _, l := range lines {
		amount := l.Amount()
		total = total.Add(amount)
		rows = append(rows, []interface{}{l.ID, l.UserLogin, l.ProductName, l.Quantity, l.Status.Label(), amount.StringFixed(2)})

		k := summaryKey{user: l.UserLogin, product: l.ProductName}
		g, ok := grouped[k]
		if !ok {
			g = &summaryRow{amount: decimal.Zero}
			grouped[k] = g
			keys = append(keys, k)
		}
		g.quantity += l.Quantity
		g.amount = g.amount.Add(amount)
	}

	summary := make([][]interface{}, 0, len(keys))
	for _, k := range keys {
		g := grouped[k]
		summary = append(summary, []interface{}{k.user, k.product, g.quantity, g.amount.StringFixed(2)})
	}

	f := excelize.NewFile()
	err = writeTable(f, SheetOrders, []interface{}{"ID", "User", "Product", "Quantity", "Status", "Order total"}, rows)
	if err == nil {
		err = writeTable(f, SheetSummary, []interface{}{"User", "Product", "Total quantity", "Total amount"}, summary)
	}
	if err == nil {
		err = addTotalSheet(f, "Total of all orders", s.money(total))
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	logger.FromCtx(ctx).Info("orders report built", zap.Int("orders", len(lines)), zap.Int("groups", len(keys)))
	return f, nil
}

func (s *service) Receipt(ctx context.Context, userID int64) (*excelize.File, error) {
	lines, err := s.orders.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNothingToReport
	}

	rows := make([][]interface{}, 0, len(lines)+1)
	total := decimal.Zero
	for _, l := range lines {
		amount := l.Amount()
		total = total.Add(amount)
		rows = append(rows, []interface{}{l.ProductName, l.Quantity, l.UnitPrice, amount.StringFixed(2)})
	}
	rows = append(rows, []interface{}{"Order total:", s.money(total)})

	f := excelize.NewFile()
	if err := writeTable(f, SheetReceipt, []interface{}{"Product", "Quantity", "Unit price", "Line total"}, rows); err != nil {
		f.Close()
		return nil, err
	}

	logger.FromCtx(ctx).Info("receipt built", zap.Int64("customer_id", userID), zap.String("total", total.StringFixed(2)))
	return f, nil
}

// Save writes f to path and closes it.
func Save(f *excelize.File, path string) error {
	defer f.Close()
	return f.SaveAs(path)
}

// Write streams f to w and closes it.
func Write(f *excelize.File, w io.Writer) error {
	defer f.Close()
	return f.Write(w)
}

func lineValue(price string, quantity int64) decimal.Decimal {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero
	}
	return p.Mul(decimal.NewFromInt(quantity))
}

// writeTable puts a bold header row and the data rows on sheet. The first
// table of a new file takes over the default sheet.
func writeTable(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := ensureSheet(f, sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}

func addTotalSheet(f *excelize.File, label, amount string) error {
	if err := ensureSheet(f, SheetTotal); err != nil {
		return err
	}
	return f.SetSheetRow(SheetTotal, "A1", &[]interface{}{label, amount})
}

func ensureSheet(f *excelize.File, sheet string) error {
	if idx, _ := f.GetSheetIndex(defaultSheet); idx != -1 {
		return f.SetSheetName(defaultSheet, sheet)
	}
	_, err := f.NewSheet(sheet)
	return err
}
