// Package mocks provides testify mocks for the service-layer interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"campus-canteen/internal/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) Create(order *domain.Order, items []domain.OrderItem, basketID int) error {
	args := m.Called(order, items, basketID)
	return args.Error(0)
}

func (m *OrderRepository) Close(orderID int, from []domain.OrderStatus, to domain.OrderStatus, refundCoins bool) (bool, int, int, error) {
	args := m.Called(orderID, from, to, refundCoins)
	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

func (m *OrderRepository) UpdateStatus(orderID int, from, to domain.OrderStatus) (bool, error) {
	args := m.Called(orderID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepository) Get(orderID int) (*domain.Order, error) {
	args := m.Called(orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *OrderRepository) GetStatus(orderID int) (domain.OrderStatus, error) {
	args := m.Called(orderID)
	return args.Get(0).(domain.OrderStatus), args.Error(1)
}

func (m *OrderRepository) List(userID int) ([]domain.Order, error) {
	args := m.Called(userID)
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *OrderRepository) SoftDeleteTerminal(userID int) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepository) ListPending() ([]domain.Order, error) {
	args := m.Called()
	var orders []domain.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.Order)
	}
	return orders, args.Error(1)
}

type BasketRepository struct {
	mock.Mock
}

func NewBasketRepository(t testingT) *BasketRepository {
	m := &BasketRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *BasketRepository) Get(profileID, restaurantID int) (*domain.Basket, error) {
	args := m.Called(profileID, restaurantID)
	var basket *domain.Basket
	if args.Get(0) != nil {
		basket = args.Get(0).(*domain.Basket)
	}
	return basket, args.Error(1)
}

func (m *BasketRepository) GetOrCreate(profileID, restaurantID int) (*domain.Basket, error) {
	args := m.Called(profileID, restaurantID)
	var basket *domain.Basket
	if args.Get(0) != nil {
		basket = args.Get(0).(*domain.Basket)
	}
	return basket, args.Error(1)
}

func (m *BasketRepository) ListItems(basketID int) ([]domain.BasketItem, error) {
	args := m.Called(basketID)
	var items []domain.BasketItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.BasketItem)
	}
	return items, args.Error(1)
}

func (m *BasketRepository) GetItemByMenu(basketID, menuID int) (*domain.BasketItem, error) {
	args := m.Called(basketID, menuID)
	var item *domain.BasketItem
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.BasketItem)
	}
	return item, args.Error(1)
}

func (m *BasketRepository) InsertItem(item *domain.BasketItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *BasketRepository) UpdateItemQuantity(itemID, quantity int) error {
	args := m.Called(itemID, quantity)
	return args.Error(0)
}

func (m *BasketRepository) DeleteItem(itemID int) error {
	args := m.Called(itemID)
	return args.Error(0)
}

func (m *BasketRepository) Delete(basketID int) error {
	args := m.Called(basketID)
	return args.Error(0)
}

type CatalogRepository struct {
	mock.Mock
}

func NewCatalogRepository(t testingT) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *CatalogRepository) ListRestaurants() ([]domain.Restaurant, error) {
	args := m.Called()
	var restaurants []domain.Restaurant
	if args.Get(0) != nil {
		restaurants = args.Get(0).([]domain.Restaurant)
	}
	return restaurants, args.Error(1)
}

func (m *CatalogRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	args := m.Called(id)
	var restaurant *domain.Restaurant
	if args.Get(0) != nil {
		restaurant = args.Get(0).(*domain.Restaurant)
	}
	return restaurant, args.Error(1)
}

func (m *CatalogRepository) ListMenus(restaurantID int) ([]domain.Menu, error) {
	args := m.Called(restaurantID)
	var menus []domain.Menu
	if args.Get(0) != nil {
		menus = args.Get(0).([]domain.Menu)
	}
	return menus, args.Error(1)
}

func (m *CatalogRepository) GetMenu(id int) (*domain.Menu, error) {
	args := m.Called(id)
	var menu *domain.Menu
	if args.Get(0) != nil {
		menu = args.Get(0).(*domain.Menu)
	}
	return menu, args.Error(1)
}

type RatingRepository struct {
	mock.Mock
}

func NewRatingRepository(t testingT) *RatingRepository {
	m := &RatingRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RatingRepository) ValidateCompletedOrder(userID, orderID, restaurantID int) (bool, error) {
	args := m.Called(userID, orderID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *RatingRepository) ExistsForOrder(orderID int) (bool, error) {
	args := m.Called(orderID)
	return args.Bool(0), args.Error(1)
}

func (m *RatingRepository) Insert(rating *domain.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *RatingRepository) ByOrder(orderID int) (*domain.Rating, error) {
	args := m.Called(orderID)
	var rating *domain.Rating
	if args.Get(0) != nil {
		rating = args.Get(0).(*domain.Rating)
	}
	return rating, args.Error(1)
}

func (m *RatingRepository) ByUser(userID int) ([]domain.Rating, error) {
	args := m.Called(userID)
	var ratings []domain.Rating
	if args.Get(0) != nil {
		ratings = args.Get(0).([]domain.Rating)
	}
	return ratings, args.Error(1)
}

func (m *RatingRepository) ByRestaurant(restaurantID int) ([]domain.Rating, error) {
	args := m.Called(restaurantID)
	var ratings []domain.Rating
	if args.Get(0) != nil {
		ratings = args.Get(0).([]domain.Rating)
	}
	return ratings, args.Error(1)
}

func (m *RatingRepository) Summary(restaurantID int) (*domain.RatingSummary, error) {
	args := m.Called(restaurantID)
	var summary *domain.RatingSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*domain.RatingSummary)
	}
	return summary, args.Error(1)
}

type RatingCache struct {
	mock.Mock
}

func NewRatingCache(t testingT) *RatingCache {
	m := &RatingCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RatingCache) GetSummary(ctx context.Context, restaurantID int) (*domain.RatingSummary, bool, error) {
	args := m.Called(ctx, restaurantID)
	var summary *domain.RatingSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*domain.RatingSummary)
	}
	return summary, args.Bool(1), args.Error(2)
}

func (m *RatingCache) SetSummary(ctx context.Context, summary *domain.RatingSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *RatingCache) InvalidateSummary(ctx context.Context, restaurantID int) error {
	args := m.Called(ctx, restaurantID)
	return args.Error(0)
}

func (m *RatingCache) MarkerExists(ctx context.Context, orderID int) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *RatingCache) SetMarker(ctx context.Context, orderID int) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type ChangePublisher struct {
	mock.Mock
}

func NewChangePublisher(t testingT) *ChangePublisher {
	m := &ChangePublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ChangePublisher) Publish(ctx context.Context, event domain.ChangeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserRepository) CreateWithProfile(email, passwordHash, fullName string, welcomeCoins int) (*domain.User, *domain.Profile, error) {
	args := m.Called(email, passwordHash, fullName, welcomeCoins)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	var profile *domain.Profile
	if args.Get(1) != nil {
		profile = args.Get(1).(*domain.Profile)
	}
	return user, profile, args.Error(2)
}

func (m *UserRepository) GetByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) Get(id int) (*domain.User, error) {
	args := m.Called(id)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) SetResetRequested(id int, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

func (m *UserRepository) CompleteReset(id int, passwordHash string) error {
	args := m.Called(id, passwordHash)
	return args.Error(0)
}

type ProfileRepository struct {
	mock.Mock
}

func NewProfileRepository(t testingT) *ProfileRepository {
	m := &ProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProfileRepository) Get(id int) (*domain.Profile, error) {
	args := m.Called(id)
	var profile *domain.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.Profile)
	}
	return profile, args.Error(1)
}

func (m *ProfileRepository) UpdateFullName(id int, fullName string) error {
	args := m.Called(id, fullName)
	return args.Error(0)
}

type PendingRegistrar struct {
	mock.Mock
}

func NewPendingRegistrar(t testingT) *PendingRegistrar {
	m := &PendingRegistrar{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PendingRegistrar) Watch(orderID, userID int, createdAt time.Time) {
	m.Called(orderID, userID, createdAt)
}
