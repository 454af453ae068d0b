package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"campus-canteen/internal/domain"
)

var (
	// ErrPaymentMethodRequired is raised before any write when an order is
	// placed without choosing how to pay.
	ErrPaymentMethodRequired = errors.New("select a payment method")
	ErrEmptyBasket           = errors.New("basket is empty")
	ErrNotOrderOwner         = errors.New("order belongs to another user")
	ErrNotCancellable        = errors.New("order can no longer be cancelled")
	ErrInvalidTransition     = errors.New("invalid order status transition")
)

// OrderService drives the order lifecycle: placement from a basket snapshot,
// the guarded status transitions, cancellation with coin refund, and history
// clearing. All compound mutations are delegated to the repository as single
// transactions.
type OrderService struct {
	orders    OrderRepository
	baskets   BasketRepository
	publisher ChangePublisher
	watcher   PendingRegistrar
}

func NewOrderService(orders OrderRepository, baskets BasketRepository, publisher ChangePublisher, watcher PendingRegistrar) *OrderService {
	return &OrderService{orders: orders, baskets: baskets, publisher: publisher, watcher: watcher}
}

// Create places an order from the user's basket at the restaurant. QRIS
// orders start PENDING and are handed to the payment watcher; CASH orders
// start NEW. Coins are clamped so the discounted total never goes negative
// and coins_used is always original_total - total.
func (s *OrderService) Create(ctx context.Context, userID, restaurantID int, method domain.PaymentMethod, notes string, coinsToApply int) (*domain.Order, error) {
	if method == "" {
		return nil, ErrPaymentMethodRequired
	}
	if _, err := domain.ParsePaymentMethod(string(method)); err != nil {
		return nil, ErrPaymentMethodRequired
	}

	basket, err := s.baskets.Get(userID, restaurantID)
	if err == sql.ErrNoRows {
		return nil, ErrEmptyBasket
	}
	if err != nil {
		return nil, err
	}
	items, err := s.baskets.ListItems(basket.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyBasket
	}

	originalTotal := domain.BasketTotal(items)
	if coinsToApply < 0 {
		coinsToApply = 0
	}
	total := originalTotal - coinsToApply
	if total < 0 {
		total = 0
	}
	coinsUsed := originalTotal - total

	order := &domain.Order{
		UserID:        userID,
		RestaurantID:  restaurantID,
		Status:        method.InitialStatus(),
		PaymentMethod: method,
		OriginalTotal: originalTotal,
		Total:         total,
		CoinsUsed:     coinsUsed,
		Notes:         notes,
	}

	lines := make([]domain.OrderItem, len(items))
	for i, item := range items {
		lines[i] = domain.OrderItem{
			MenuID:   item.MenuID,
			Quantity: item.Quantity,
			MenuName: item.MenuName,
			Price:    item.Price,
		}
	}

	order.Items = lines

	if err := s.orders.Create(order, lines, basket.ID); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publish(ctx, domain.ChangeEvent{
		Table:        domain.TableOrders,
		Type:         domain.EventInsert,
		UserID:       userID,
		OrderID:      order.ID,
		RestaurantID: restaurantID,
		Status:       order.Status,
	})
	if coinsUsed > 0 {
		s.publish(ctx, domain.ChangeEvent{
			Table:  domain.TableProfiles,
			Type:   domain.EventUpdate,
			UserID: userID,
			Coins:  -coinsUsed,
		})
	}

	if order.Status == domain.StatusPending && s.watcher != nil {
		s.watcher.Watch(order.ID, userID, order.CreatedAt)
	}
	return order, nil
}

// Cancel closes an order from NEW or PENDING. Coins spent on the order come
// back to the profile in the same transaction as the status flip.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID int) error {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return ErrNotOrderOwner
	}

	closed, _, coinsUsed, err := s.orders.Close(orderID,
		[]domain.OrderStatus{domain.StatusNew, domain.StatusPending},
		domain.StatusCancelled, true)
	if err != nil {
		return err
	}
	if !closed {
		return ErrNotCancellable
	}

	s.publish(ctx, domain.ChangeEvent{
		Table:        domain.TableOrders,
		Type:         domain.EventUpdate,
		UserID:       userID,
		OrderID:      orderID,
		RestaurantID: order.RestaurantID,
		Status:       domain.StatusCancelled,
	})
	if coinsUsed > 0 {
		s.publish(ctx, domain.ChangeEvent{
			Table:  domain.TableProfiles,
			Type:   domain.EventUpdate,
			UserID: userID,
			Coins:  coinsUsed,
		})
	}
	return nil
}

// Complete moves READY_FOR_PICKUP to COMPLETED. Any other starting state,
// including the terminal ones, refuses the transition.
func (s *OrderService) Complete(ctx context.Context, orderID int) error {
	moved, err := s.orders.UpdateStatus(orderID, domain.StatusReadyForPickup, domain.StatusCompleted)
	if err != nil {
		return err
	}
	if !moved {
		return ErrInvalidTransition
	}
	s.publishStatus(ctx, orderID, domain.StatusCompleted)
	return nil
}

// Advance steps an in-flight order along the kitchen progression.
func (s *OrderService) Advance(ctx context.Context, orderID int) (domain.OrderStatus, error) {
	current, err := s.orders.GetStatus(orderID)
	if err != nil {
		return "", err
	}
	next, ok := current.Next()
	if !ok {
		return "", ErrInvalidTransition
	}

	moved, err := s.orders.UpdateStatus(orderID, current, next)
	if err != nil {
		return "", err
	}
	if !moved {
		return "", ErrInvalidTransition
	}
	s.publishStatus(ctx, orderID, next)
	return next, nil
}

// ConfirmPayment flips a PENDING order to NEW when the QRIS confirmation
// arrives. Already-closed orders are left alone.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID int) error {
	moved, err := s.orders.UpdateStatus(orderID, domain.StatusPending, domain.StatusNew)
	if err != nil {
		return err
	}
	if !moved {
		return ErrInvalidTransition
	}
	s.publishStatus(ctx, orderID, domain.StatusNew)
	return nil
}

func (s *OrderService) List(userID int) ([]domain.Order, error) {
	return s.orders.List(userID)
}

func (s *OrderService) Get(orderID int) (*domain.Order, error) {
	return s.orders.Get(orderID)
}

// ClearHistory soft-deletes every closed order of the user. It reports
// success as a boolean so callers can toast instead of crash.
func (s *OrderService) ClearHistory(ctx context.Context, userID int) bool {
	affected, err := s.orders.SoftDeleteTerminal(userID)
	if err != nil {
		log.Printf("Failed to clear order history for user %d: %v", userID, err)
		return false
	}
	if affected > 0 {
		s.publish(ctx, domain.ChangeEvent{
			Table:  domain.TableOrders,
			Type:   domain.EventDelete,
			UserID: userID,
		})
	}
	return true
}

func (s *OrderService) publishStatus(ctx context.Context, orderID int, status domain.OrderStatus) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		log.Printf("Failed to load order %d for change event: %v", orderID, err)
		return
	}
	s.publish(ctx, domain.ChangeEvent{
		Table:        domain.TableOrders,
		Type:         domain.EventUpdate,
		UserID:       order.UserID,
		OrderID:      orderID,
		RestaurantID: order.RestaurantID,
		Status:       status,
	})
}

func (s *OrderService) publish(ctx context.Context, event domain.ChangeEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = time.Now()
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish change event: %v", err)
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)
