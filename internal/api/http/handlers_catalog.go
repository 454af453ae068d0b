package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.Restaurants()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	restaurant, err := h.Catalog.Restaurant(id)
	if err != nil {
		http.Error(w, "restaurant not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *Handler) listMenus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	menus, err := h.Catalog.Menus(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, menus)
}
