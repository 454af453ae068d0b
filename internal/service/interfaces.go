package service

import (
	"context"
	"time"

	"campus-canteen/internal/domain"
)

type UserRepository interface {
	CreateWithProfile(email, passwordHash, fullName string, welcomeCoins int) (*domain.User, *domain.Profile, error)
	GetByEmail(email string) (*domain.User, error)
	Get(id int) (*domain.User, error)
	SetResetRequested(id int, at time.Time) error
	CompleteReset(id int, passwordHash string) error
}

type ProfileRepository interface {
	Get(id int) (*domain.Profile, error)
	UpdateFullName(id int, fullName string) error
}

type CatalogRepository interface {
	ListRestaurants() ([]domain.Restaurant, error)
	GetRestaurant(id int) (*domain.Restaurant, error)
	ListMenus(restaurantID int) ([]domain.Menu, error)
	GetMenu(id int) (*domain.Menu, error)
}

type BasketRepository interface {
	Get(profileID, restaurantID int) (*domain.Basket, error)
	GetOrCreate(profileID, restaurantID int) (*domain.Basket, error)
	ListItems(basketID int) ([]domain.BasketItem, error)
	GetItemByMenu(basketID, menuID int) (*domain.BasketItem, error)
	InsertItem(item *domain.BasketItem) error
	UpdateItemQuantity(itemID, quantity int) error
	DeleteItem(itemID int) error
	Delete(basketID int) error
}

type OrderRepository interface {
	Create(order *domain.Order, items []domain.OrderItem, basketID int) error
	Close(orderID int, from []domain.OrderStatus, to domain.OrderStatus, refundCoins bool) (closed bool, userID, coinsUsed int, err error)
	UpdateStatus(orderID int, from, to domain.OrderStatus) (bool, error)
	Get(orderID int) (*domain.Order, error)
	GetStatus(orderID int) (domain.OrderStatus, error)
	List(userID int) ([]domain.Order, error)
	SoftDeleteTerminal(userID int) (int64, error)
	ListPending() ([]domain.Order, error)
}

type RatingRepository interface {
	ValidateCompletedOrder(userID, orderID, restaurantID int) (bool, error)
	ExistsForOrder(orderID int) (bool, error)
	Insert(rating *domain.Rating) error
	ByOrder(orderID int) (*domain.Rating, error)
	ByUser(userID int) ([]domain.Rating, error)
	ByRestaurant(restaurantID int) ([]domain.Rating, error)
	Summary(restaurantID int) (*domain.RatingSummary, error)
}

type RatingCache interface {
	GetSummary(ctx context.Context, restaurantID int) (*domain.RatingSummary, bool, error)
	SetSummary(ctx context.Context, summary *domain.RatingSummary) error
	InvalidateSummary(ctx context.Context, restaurantID int) error
	MarkerExists(ctx context.Context, orderID int) (bool, error)
	SetMarker(ctx context.Context, orderID int) error
}

type ChangePublisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}

// PendingRegistrar is how the order service hands freshly created QRIS orders
// to the payment watcher.
type PendingRegistrar interface {
	Watch(orderID, userID int, createdAt time.Time)
}

type AuthServiceInterface interface {
	SignUp(ctx context.Context, email, password, fullName string) (string, *domain.Profile, error)
	SignIn(ctx context.Context, email, password string) (string, *domain.Profile, error)
	Identity(tokenString string) (int, error)
	Profile(userID int) (*domain.Profile, error)
	UpdateFullName(ctx context.Context, userID int, fullName string) error
	RequestPasswordReset(email string) (string, error)
	CompletePasswordReset(resetToken, newPassword string) error
}

type CatalogServiceInterface interface {
	Restaurants() ([]domain.Restaurant, error)
	Restaurant(id int) (*domain.Restaurant, error)
	Menus(restaurantID int) ([]domain.Menu, error)
}

type BasketServiceInterface interface {
	ActiveBasket(userID, restaurantID int) (*domain.Basket, []domain.BasketItem, error)
	AddItem(userID, restaurantID, menuID, quantity int) ([]domain.BasketItem, error)
	UpdateItemQuantity(itemID, quantity int) error
	Clear(userID, restaurantID int) error
}

type OrderServiceInterface interface {
	Create(ctx context.Context, userID, restaurantID int, method domain.PaymentMethod, notes string, coinsToApply int) (*domain.Order, error)
	Cancel(ctx context.Context, userID, orderID int) error
	Complete(ctx context.Context, orderID int) error
	Advance(ctx context.Context, orderID int) (domain.OrderStatus, error)
	ConfirmPayment(ctx context.Context, orderID int) error
	List(userID int) ([]domain.Order, error)
	Get(orderID int) (*domain.Order, error)
	ClearHistory(ctx context.Context, userID int) bool
}

type RatingServiceInterface interface {
	Submit(ctx context.Context, rating *domain.Rating) error
	RestaurantSummary(ctx context.Context, restaurantID int, forceRefresh bool) (*domain.RatingSummary, error)
	RestaurantRatings(restaurantID int) ([]domain.Rating, error)
	ByOrder(orderID int) (*domain.Rating, error)
	ByUser(userID int) ([]domain.Rating, error)
}
