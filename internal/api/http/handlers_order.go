package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"campus-canteen/internal/domain"
	"campus-canteen/internal/service"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RestaurantID  int    `json:"restaurant_id"`
		PaymentMethod string `json:"payment_method"`
		Notes         string `json:"notes"`
		Coins         int    `json:"coins"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Create(r.Context(), userIDFrom(r), input.RestaurantID,
		domain.PaymentMethod(input.PaymentMethod), input.Notes, input.Coins)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentMethodRequired), errors.Is(err, service.ErrEmptyBasket):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(userIDFrom(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	err := h.Orders.Cancel(r.Context(), userIDFrom(r), orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOrderOwner):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, service.ErrNotCancellable):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.StatusCancelled)})
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	if err := h.Orders.Complete(r.Context(), order.ID); err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.StatusCompleted)})
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	next, err := h.Orders.Advance(r.Context(), order.ID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(next)})
}

func (h *Handler) clearOrderHistory(w http.ResponseWriter, r *http.Request) {
	ok := h.Orders.ClearHistory(r.Context(), userIDFrom(r))
	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

// ownedOrder loads the order from the path and enforces that it belongs to
// the authenticated user.
func (h *Handler) ownedOrder(w http.ResponseWriter, r *http.Request) (*domain.Order, bool) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	order, err := h.Orders.Get(orderID)
	if err != nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return nil, false
	}
	if order.UserID != userIDFrom(r) {
		http.Error(w, "order belongs to another user", http.StatusForbidden)
		return nil, false
	}
	return order, true
}
