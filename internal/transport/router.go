package transport

import (
	"context"
	"net/http"
	"time"

	"warehouse-be/internal/history"
	"warehouse-be/internal/logger"
	"warehouse-be/internal/metrics"
	"warehouse-be/internal/middleware"
	"warehouse-be/internal/order"
	"warehouse-be/internal/product"
	"warehouse-be/internal/report"
	"warehouse-be/internal/user"
	"warehouse-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the services the HTTP surface is built on.
type Deps struct {
	DB       Pinger
	Users    user.Service
	Products product.Service
	Orders   order.Service
	History  history.Service
	Reports  report.Service
	Limiter  *middleware.RateLimiter

	JWTSecret     string
	TokenTTL      time.Duration
	SecureCookies bool
}

type handler struct {
	Deps
}

func NewRouter(d Deps) http.Handler {
	h := &handler{Deps: d}

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(metrics.InstrumentHandler)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Authenticate(d.JWTSecret, d.Users))
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware)
	}

	r.Get("/healthz", h.health)
	r.Handle("/metrics", metrics.Handler())

	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)

	r.With(middleware.RequireRole(user.Roles...)).Get("/products", h.listProducts)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(user.RoleAdministrator))

		r.Post("/products", h.addProduct)
		r.Patch("/products/{id}", h.editProduct)
		r.Delete("/products/{id}", h.deleteProduct)

		r.Get("/users", h.listUsers)
		r.Post("/users", h.createUser)
		r.Patch("/users/roles", h.updateRoles)
		r.Delete("/users", h.deleteUsers)

		r.Get("/history", h.listHistory)
		r.Get("/reports/stock", h.stockReport)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(user.RoleEmployee))

		r.Get("/orders", h.listOrders)
		r.Patch("/orders/{id}/status", h.updateOrderStatus)
		r.Get("/reports/orders", h.ordersReport)
		r.Get("/receipts", h.listReceiptCustomers)
		r.Get("/receipts/{userID}", h.receipt)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(user.RoleCustomer))

		r.Post("/orders", h.placeOrder)
		r.Get("/orders/mine", h.myOrders)
		r.Get("/orders/{id}/cancellation", h.previewCancel)
		r.Delete("/orders/{id}", h.cancelOrder)
	})

	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			utils.WriteJSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := utils.ParseID(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}
