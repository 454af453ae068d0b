package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"campus-canteen/internal/domain"
	"campus-canteen/internal/service"
)

// PaymentChecker is the slice of the payment watcher the API needs: manual
// status checks and the remaining window for rendering the countdown.
type PaymentChecker interface {
	CheckNow(ctx context.Context, orderID int) (domain.OrderStatus, error)
	TimeLeft(orderID int) (time.Duration, bool)
}

type Handler struct {
	Auth    service.AuthServiceInterface
	Catalog service.CatalogServiceInterface
	Baskets service.BasketServiceInterface
	Orders  service.OrderServiceInterface
	Ratings service.RatingServiceInterface
	Payment PaymentChecker
	QR      service.QRGenerator
	Broker  *service.Broker
}

func NewHandler(auth service.AuthServiceInterface, catalog service.CatalogServiceInterface,
	baskets service.BasketServiceInterface, orders service.OrderServiceInterface,
	ratings service.RatingServiceInterface, payment PaymentChecker,
	qr service.QRGenerator, broker *service.Broker) *Handler {
	return &Handler{
		Auth:    auth,
		Catalog: catalog,
		Baskets: baskets,
		Orders:  orders,
		Ratings: ratings,
		Payment: payment,
		QR:      qr,
		Broker:  broker,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/auth/signup", h.signUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", h.signIn).Methods("POST")
	r.HandleFunc("/api/auth/reset/request", h.requestPasswordReset).Methods("POST")
	r.HandleFunc("/api/auth/reset/complete", h.completePasswordReset).Methods("POST")

	r.HandleFunc("/api/restaurants", h.listRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menus", h.listMenus).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/ratings", h.getRestaurantRatings).Methods("GET")

	authed := r.NewRoute().Subrouter()
	authed.Use(h.authMiddleware)

	authed.HandleFunc("/api/profile", h.getProfile).Methods("GET")
	authed.HandleFunc("/api/profile", h.updateProfile).Methods("PATCH")
	authed.HandleFunc("/api/events", h.streamEvents).Methods("GET")

	authed.HandleFunc("/api/restaurants/{id}/basket", h.getBasket).Methods("GET")
	authed.HandleFunc("/api/restaurants/{id}/basket/items", h.addBasketItem).Methods("POST")
	authed.HandleFunc("/api/restaurants/{id}/basket", h.clearBasket).Methods("DELETE")
	authed.HandleFunc("/api/basket/items/{itemId}", h.updateBasketItem).Methods("PATCH")

	authed.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	authed.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	authed.HandleFunc("/api/orders/history", h.clearOrderHistory).Methods("DELETE")
	authed.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	authed.HandleFunc("/api/orders/{id}/cancel", h.cancelOrder).Methods("POST")
	authed.HandleFunc("/api/orders/{id}/complete", h.completeOrder).Methods("POST")
	authed.HandleFunc("/api/orders/{id}/advance", h.advanceOrder).Methods("POST")

	authed.HandleFunc("/api/orders/{id}/payment", h.getPaymentStatus).Methods("GET")
	authed.HandleFunc("/api/orders/{id}/payment/check", h.checkPaymentStatus).Methods("POST")
	authed.HandleFunc("/api/orders/{id}/payment/confirm", h.confirmPayment).Methods("POST")
	authed.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	authed.HandleFunc("/api/orders/{id}/rating", h.submitRating).Methods("POST")
	authed.HandleFunc("/api/orders/{id}/rating", h.getOrderRating).Methods("GET")
	authed.HandleFunc("/api/ratings", h.listUserRatings).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "campus-canteen",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
