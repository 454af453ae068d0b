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

func (h *Handler) getBasket(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["id"])
	basket, items, err := h.Baskets.ActiveBasket(userIDFrom(r), restaurantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"basket":      basket,
		"items":       items,
		"total_price": domain.BasketTotal(items),
	})
}

func (h *Handler) addBasketItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var input struct {
		MenuID   int `json:"menu_id"`
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := h.Baskets.AddItem(userIDFrom(r), restaurantID, input.MenuID, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrMenuNotInRestaurant):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":       items,
		"total_price": domain.BasketTotal(items),
	})
}

func (h *Handler) updateBasketItem(w http.ResponseWriter, r *http.Request) {
	itemID, _ := strconv.Atoi(mux.Vars(r)["itemId"])

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Baskets.UpdateItemQuantity(itemID, input.Quantity); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) clearBasket(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Baskets.Clear(userIDFrom(r), restaurantID); err != nil {
		if errors.Is(err, service.ErrBasketNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
