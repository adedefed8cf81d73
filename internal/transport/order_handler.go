package transport

import (
	"net/http"

	"warehouse-be/internal/order"
	"warehouse-be/internal/utils"
)

type placeOrderRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type statusRequest struct {
	Status order.Status `json:"status"`
}

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	lines, err := h.Orders.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, lines)
}

func (h *handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in statusRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Orders.UpdateStatus(r.Context(), id, in.Status); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listReceiptCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Orders.CustomersWithOrders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, customers)
}

func (h *handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	caller, _ := callerFrom(r.Context())

	var in placeOrderRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.Place(r.Context(), caller.UserID, in.ProductID, in.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *handler) myOrders(w http.ResponseWriter, r *http.Request) {
	caller, _ := callerFrom(r.Context())

	lines, err := h.Orders.ListForUser(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, lines)
}

// previewCancel is the first phase of a cancellation: it shows the effect
// without changing anything.
func (h *handler) previewCancel(w http.ResponseWriter, r *http.Request) {
	caller, _ := callerFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	preview, err := h.Orders.PreviewCancel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if preview.UserID != caller.UserID {
		writeError(w, r, order.ErrNotOrderOwner)
		return
	}
	utils.WriteJSON(w, http.StatusOK, preview)
}

func (h *handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	caller, _ := callerFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Orders.CancelOwn(r.Context(), caller.UserID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
