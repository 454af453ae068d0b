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

func (h *Handler) submitRating(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var input struct {
		RestaurantID      int    `json:"restaurant_id"`
		ServiceRating     int    `json:"service_rating"`
		FoodQualityRating int    `json:"food_quality_rating"`
		Review            string `json:"review"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rating := &domain.Rating{
		UserID:            userIDFrom(r),
		RestaurantID:      input.RestaurantID,
		OrderID:           orderID,
		ServiceRating:     input.ServiceRating,
		FoodQualityRating: input.FoodQualityRating,
		Review:            input.Review,
	}

	if err := h.Ratings.Submit(r.Context(), rating); err != nil {
		switch {
		case errors.Is(err, service.ErrRatingOutOfRange), errors.Is(err, service.ErrOrderNotRatable):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrDuplicateRating):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, rating)
}

func (h *Handler) getOrderRating(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	rating, err := h.Ratings.ByOrder(orderID)
	if err != nil {
		http.Error(w, "rating not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

func (h *Handler) listUserRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.Ratings.ByUser(userIDFrom(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

func (h *Handler) getRestaurantRatings(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["id"])
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	summary, err := h.Ratings.RestaurantSummary(r.Context(), restaurantID, forceRefresh)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ratings, err := h.Ratings.RestaurantRatings(restaurantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary": summary,
		"ratings": ratings,
	})
}
