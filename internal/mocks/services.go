package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campus-canteen/internal/domain"
)

type OrderServiceInterface struct {
	mock.Mock
}

func NewOrderServiceInterface(t testingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderServiceInterface) Create(ctx context.Context, userID, restaurantID int, method domain.PaymentMethod, notes string, coinsToApply int) (*domain.Order, error) {
	args := m.Called(ctx, userID, restaurantID, method, notes, coinsToApply)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderServiceInterface) Cancel(ctx context.Context, userID, orderID int) error {
	args := m.Called(ctx, userID, orderID)
	return args.Error(0)
}

func (m *OrderServiceInterface) Complete(ctx context.Context, orderID int) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderServiceInterface) Advance(ctx context.Context, orderID int) (domain.OrderStatus, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.OrderStatus), args.Error(1)
}

func (m *OrderServiceInterface) ConfirmPayment(ctx context.Context, orderID int) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderServiceInterface) List(userID int) ([]domain.Order, error) {
	args := m.Called(userID)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderServiceInterface) Get(orderID int) (*domain.Order, error) {
	args := m.Called(orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderServiceInterface) ClearHistory(ctx context.Context, userID int) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}

type AuthServiceInterface struct {
	mock.Mock
}

func NewAuthServiceInterface(t testingT) *AuthServiceInterface {
	m := &AuthServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AuthServiceInterface) SignUp(ctx context.Context, email, password, fullName string) (string, *domain.Profile, error) {
	args := m.Called(ctx, email, password, fullName)
	var profile *domain.Profile
	if args.Get(1) != nil {
		profile = args.Get(1).(*domain.Profile)
	}
	return args.String(0), profile, args.Error(2)
}

func (m *AuthServiceInterface) SignIn(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	args := m.Called(ctx, email, password)
	var profile *domain.Profile
	if args.Get(1) != nil {
		profile = args.Get(1).(*domain.Profile)
	}
	return args.String(0), profile, args.Error(2)
}

func (m *AuthServiceInterface) Identity(tokenString string) (int, error) {
	args := m.Called(tokenString)
	return args.Int(0), args.Error(1)
}

func (m *AuthServiceInterface) Profile(userID int) (*domain.Profile, error) {
	args := m.Called(userID)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *AuthServiceInterface) UpdateFullName(ctx context.Context, userID int, fullName string) error {
	args := m.Called(ctx, userID, fullName)
	return args.Error(0)
}

func (m *AuthServiceInterface) RequestPasswordReset(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *AuthServiceInterface) CompletePasswordReset(resetToken, newPassword string) error {
	args := m.Called(resetToken, newPassword)
	return args.Error(0)
}

type RatingServiceInterface struct {
	mock.Mock
}

func NewRatingServiceInterface(t testingT) *RatingServiceInterface {
	m := &RatingServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RatingServiceInterface) Submit(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *RatingServiceInterface) RestaurantSummary(ctx context.Context, restaurantID int, forceRefresh bool) (*domain.RatingSummary, error) {
	args := m.Called(ctx, restaurantID, forceRefresh)
	var summary *domain.RatingSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*domain.RatingSummary)
	}
	return summary, args.Error(1)
}

func (m *RatingServiceInterface) RestaurantRatings(restaurantID int) ([]domain.Rating, error) {
	args := m.Called(restaurantID)
	var ratings []domain.Rating
	if args.Get(0) != nil {
		ratings = args.Get(0).([]domain.Rating)
	}
	return ratings, args.Error(1)
}

func (m *RatingServiceInterface) ByOrder(orderID int) (*domain.Rating, error) {
	args := m.Called(orderID)
	var rating *domain.Rating
	if args.Get(0) != nil {
		rating = args.Get(0).(*domain.Rating)
	}
	return rating, args.Error(1)
}

func (m *RatingServiceInterface) ByUser(userID int) ([]domain.Rating, error) {
	args := m.Called(userID)
	var ratings []domain.Rating
	if args.Get(0) != nil {
		ratings = args.Get(0).([]domain.Rating)
	}
	return ratings, args.Error(1)
}

type BasketServiceInterface struct {
	mock.Mock
}

func NewBasketServiceInterface(t testingT) *BasketServiceInterface {
	m := &BasketServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *BasketServiceInterface) ActiveBasket(userID, restaurantID int) (*domain.Basket, []domain.BasketItem, error) {
	args := m.Called(userID, restaurantID)
	var basket *domain.Basket
	if args.Get(0) != nil {
		basket = args.Get(0).(*domain.Basket)
	}
	var items []domain.BasketItem
	if args.Get(1) != nil {
		items = args.Get(1).([]domain.BasketItem)
	}
	return basket, items, args.Error(2)
}

func (m *BasketServiceInterface) AddItem(userID, restaurantID, menuID, quantity int) ([]domain.BasketItem, error) {
	args := m.Called(userID, restaurantID, menuID, quantity)
	var items []domain.BasketItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.BasketItem)
	}
	return items, args.Error(1)
}

func (m *BasketServiceInterface) UpdateItemQuantity(itemID, quantity int) error {
	args := m.Called(itemID, quantity)
	return args.Error(0)
}

func (m *BasketServiceInterface) Clear(userID, restaurantID int) error {
	args := m.Called(userID, restaurantID)
	return args.Error(0)
}
