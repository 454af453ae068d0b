package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"campus-canteen/internal/domain"
	"campus-canteen/internal/mocks"
	"campus-canteen/internal/service"
	"campus-canteen/internal/storage"
)

// stubPayment satisfies PaymentChecker for endpoints the test exercises.
type stubPayment struct {
	status   domain.OrderStatus
	checkErr error
	left     time.Duration
	tracked  bool
}

func (s *stubPayment) CheckNow(ctx context.Context, orderID int) (domain.OrderStatus, error) {
	return s.status, s.checkErr
}

func (s *stubPayment) TimeLeft(orderID int) (time.Duration, bool) {
	return s.left, s.tracked
}

type testEnv struct {
	router  *mux.Router
	auth    *mocks.AuthServiceInterface
	orders  *mocks.OrderServiceInterface
	baskets *mocks.BasketServiceInterface
	ratings *mocks.RatingServiceInterface
	payment *stubPayment
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		auth:    mocks.NewAuthServiceInterface(t),
		orders:  mocks.NewOrderServiceInterface(t),
		baskets: mocks.NewBasketServiceInterface(t),
		ratings: mocks.NewRatingServiceInterface(t),
		payment: &stubPayment{},
	}
	handler := NewHandler(env.auth, nil, env.baskets, env.orders, env.ratings,
		env.payment, service.DefaultQRGenerator{BaseURL: "http://localhost:8080"}, service.NewBroker())
	env.router = mux.NewRouter()
	handler.RegisterRoutes(env.router)
	return env
}

func (env *testEnv) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) signedIn() {
	env.auth.On("Identity", "test-token").Return(1, nil).Once()
}

func TestSignUpEndpoint(t *testing.T) {
	t.Run("duplicate_email_is_conflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("SignUp", mock.Anything, "budi@campus.test", "secret123", "Budi").
			Return("", nil, storage.ErrDuplicateEmail).Once()

		rec := env.do("POST", "/api/auth/signup",
			`{"email":"budi@campus.test","password":"secret123","full_name":"Budi"}`, false)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "already registered")
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("missing_token", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do("GET", "/api/orders", "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid_token", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("Identity", "test-token").Return(0, service.ErrInvalidToken).Once()
		rec := env.do("GET", "/api/orders", "", true)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("pending_reset_is_forbidden_not_unauthorized", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("Identity", "test-token").Return(0, service.ErrPasswordResetPending).Once()
		rec := env.do("GET", "/api/orders", "", true)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Create", mock.Anything, 1, 3, domain.PaymentQRIS, "", 0).
			Return(&domain.Order{ID: 42, UserID: 1, RestaurantID: 3, Status: domain.StatusPending, Total: 45000}, nil).Once()

		rec := env.do("POST", "/api/orders", `{"restaurant_id":3,"payment_method":"QRIS"}`, true)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var order domain.Order
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&order))
		assert.Equal(t, domain.StatusPending, order.Status)
	})

	t.Run("missing_payment_method_is_bad_request", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Create", mock.Anything, 1, 3, domain.PaymentMethod(""), "", 0).
			Return(nil, service.ErrPaymentMethodRequired).Once()

		rec := env.do("POST", "/api/orders", `{"restaurant_id":3}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "select a payment method")
	})

	t.Run("empty_basket_is_bad_request", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Create", mock.Anything, 1, 3, domain.PaymentCash, "", 0).
			Return(nil, service.ErrEmptyBasket).Once()

		rec := env.do("POST", "/api/orders", `{"restaurant_id":3,"payment_method":"CASH"}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCancelOrderEndpoint(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Cancel", mock.Anything, 1, 9).Return(nil).Once()

		rec := env.do("POST", "/api/orders/9/cancel", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "CANCELLED")
	})

	t.Run("already_closed_is_conflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Cancel", mock.Anything, 1, 9).Return(service.ErrNotCancellable).Once()

		rec := env.do("POST", "/api/orders/9/cancel", "", true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("foreign_order_is_forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Cancel", mock.Anything, 1, 9).Return(service.ErrNotOrderOwner).Once()

		rec := env.do("POST", "/api/orders/9/cancel", "", true)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCompleteOrderEndpoint(t *testing.T) {
	t.Run("owner_completes_pickup", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 1, Status: domain.StatusReadyForPickup}, nil).Once()
		env.orders.On("Complete", mock.Anything, 9).Return(nil).Once()

		rec := env.do("POST", "/api/orders/9/complete", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "COMPLETED")
	})

	t.Run("foreign_order_is_forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 2, Status: domain.StatusReadyForPickup}, nil).Once()

		rec := env.do("POST", "/api/orders/9/complete", "", true)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		env.orders.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})
}

func TestAdvanceOrderEndpoint(t *testing.T) {
	t.Run("owner_advances", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 1, Status: domain.StatusNew}, nil).Once()
		env.orders.On("Advance", mock.Anything, 9).Return(domain.StatusCooking, nil).Once()

		rec := env.do("POST", "/api/orders/9/advance", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "COOKING")
	})

	t.Run("foreign_order_is_forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 2, Status: domain.StatusNew}, nil).Once()

		rec := env.do("POST", "/api/orders/9/advance", "", true)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		env.orders.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything)
	})
}

func TestGetOrderEndpoint(t *testing.T) {
	t.Run("owner_sees_order", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 1}, nil).Once()

		rec := env.do("GET", "/api/orders/9", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other_users_order_is_forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 2}, nil).Once()

		rec := env.do("GET", "/api/orders/9", "", true)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestClearOrderHistoryEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.signedIn()
	env.orders.On("ClearHistory", mock.Anything, 1).Return(true).Once()

	rec := env.do("DELETE", "/api/orders/history", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]bool
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body["success"])
}

func TestPaymentEndpoints(t *testing.T) {
	pendingOrder := &domain.Order{ID: 9, UserID: 1, Status: domain.StatusPending, Total: 45000}

	t.Run("status_includes_countdown_for_tracked_order", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(pendingOrder, nil).Once()
		env.payment.left = 120 * time.Second
		env.payment.tracked = true

		rec := env.do("GET", "/api/orders/9/payment", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, float64(120), body["time_left_seconds"])
	})

	t.Run("status_omits_countdown_for_untracked_order", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 1, Status: domain.StatusNew}, nil).Once()

		rec := env.do("GET", "/api/orders/9/payment", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		_, present := body["time_left_seconds"]
		assert.False(t, present)
	})

	t.Run("manual_check_reports_fresh_status", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(pendingOrder, nil).Once()
		env.payment.status = domain.StatusExpired

		rec := env.do("POST", "/api/orders/9/payment/check", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "EXPIRED")
	})

	t.Run("confirm_flips_pending_to_new", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(pendingOrder, nil).Once()
		env.orders.On("ConfirmPayment", mock.Anything, 9).Return(nil).Once()

		rec := env.do("POST", "/api/orders/9/payment/confirm", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "NEW")
	})

	t.Run("qrcode_only_for_pending_orders", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 1, Status: domain.StatusCompleted}, nil).Once()

		rec := env.do("GET", "/api/orders/9/qrcode", "", true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("qrcode_renders_png", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.orders.On("Get", 9).Return(pendingOrder, nil).Once()

		rec := env.do("GET", "/api/orders/9/qrcode", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Body.Bytes())
	})
}

func TestSubmitRatingEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.ratings.On("Submit", mock.Anything, &domain.Rating{
			UserID:            1,
			RestaurantID:      3,
			OrderID:           9,
			ServiceRating:     5,
			FoodQualityRating: 4,
			Review:            "mantap",
		}).Return(nil).Once()

		rec := env.do("POST", "/api/orders/9/rating",
			`{"restaurant_id":3,"service_rating":5,"food_quality_rating":4,"review":"mantap"}`, true)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate_is_conflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.ratings.On("Submit", mock.Anything, mock.Anything).
			Return(service.ErrDuplicateRating).Once()

		rec := env.do("POST", "/api/orders/9/rating",
			`{"restaurant_id":3,"service_rating":5,"food_quality_rating":4}`, true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestBasketEndpoints(t *testing.T) {
	t.Run("add_item", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.baskets.On("AddItem", 1, 3, 100, 2).Return([]domain.BasketItem{
			{ID: 10, MenuID: 100, Quantity: 2, MenuName: "Nasi Goreng", Price: 15000},
		}, nil).Once()

		rec := env.do("POST", "/api/restaurants/3/basket/items", `{"menu_id":100,"quantity":2}`, true)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid_quantity_is_bad_request", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.baskets.On("AddItem", 1, 3, 100, 0).Return(nil, service.ErrInvalidQuantity).Once()

		rec := env.do("POST", "/api/restaurants/3/basket/items", `{"menu_id":100,"quantity":0}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("clear_missing_basket_is_not_found", func(t *testing.T) {
		env := newTestEnv(t)
		env.signedIn()
		env.baskets.On("Clear", 1, 3).Return(service.ErrBasketNotFound).Once()

		rec := env.do("DELETE", "/api/restaurants/3/basket", "", true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
