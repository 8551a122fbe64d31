package handlers

import (
	"net/http"

	"freight-matching-service/internal/api/dto"
	"freight-matching-service/internal/services"
)

// OrderHandler exposes the pending pool for inspection.
type OrderHandler struct {
	Pool *services.PendingPool
}

// Pending lists orders waiting for aggregation, in arrival order.
func (h *OrderHandler) Pending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	orders := h.Pool.Orders()
	res := dto.PendingOrdersResponse{
		Orders: make([]dto.OrderPayload, 0, len(orders)),
		Count:  len(orders),
	}
	for _, o := range orders {
		res.Orders = append(res.Orders, payloadFromOrder(o))
	}

	writeJSON(w, r, http.StatusOK, res)
}
