package transport

import (
	"fmt"
	"net/http"

	"warehouse-be/internal/logger"
	"warehouse-be/internal/report"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendWorkbook(w http.ResponseWriter, r *http.Request, filename string, f *excelize.File, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := report.Write(f, w); err != nil {
		logger.FromCtx(r.Context()).Error("failed to stream workbook", zap.String("file", filename), zap.Error(err))
	}
}

func (h *handler) stockReport(w http.ResponseWriter, r *http.Request) {
	f, err := h.Reports.Stock(r.Context())
	sendWorkbook(w, r, "stock.xlsx", f, err)
}

func (h *handler) ordersReport(w http.ResponseWriter, r *http.Request) {
	f, err := h.Reports.Orders(r.Context())
	sendWorkbook(w, r, "orders.xlsx", f, err)
}

func (h *handler) receipt(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	f, err := h.Reports.Receipt(r.Context(), userID)
	sendWorkbook(w, r, fmt.Sprintf("receipt-%d.xlsx", userID), f, err)
}
