package httpapi

import (
	"errors"
	"net/http"

	"campus-canteen/internal/domain"
	"campus-canteen/internal/service"
)

func (h *Handler) getPaymentStatus(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	response := map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
		"total":    order.Total,
	}
	if left, tracked := h.Payment.TimeLeft(order.ID); tracked {
		response["time_left_seconds"] = int(left.Seconds())
	}
	writeJSON(w, http.StatusOK, response)
}

// checkPaymentStatus re-reads the order row directly. This is the fallback
// path for when realtime delivery is delayed or lost.
func (h *Handler) checkPaymentStatus(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	status, err := h.Payment.CheckNow(r.Context(), order.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order_id": order.ID,
		"status":   status,
	})
}

// confirmPayment is the deep-link callback a payment app lands on after a
// successful QRIS scan.
func (h *Handler) confirmPayment(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	if err := h.Orders.ConfirmPayment(r.Context(), order.ID); err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			http.Error(w, "order is no longer awaiting payment", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.StatusNew)})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}
	if order.Status != domain.StatusPending {
		http.Error(w, "order is not awaiting payment", http.StatusConflict)
		return
	}

	png, err := h.QR.Generate(order.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
