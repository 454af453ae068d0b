package tests

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"campus-canteen/internal/domain"
	"campus-canteen/internal/mocks"
	"campus-canteen/internal/service"
)

func basketWithItems() (*domain.Basket, []domain.BasketItem) {
	basket := &domain.Basket{ID: 5, ProfileID: 1, RestaurantID: 3}
	items := []domain.BasketItem{
		{ID: 10, BasketID: 5, MenuID: 100, Quantity: 2, MenuName: "Nasi Goreng", Price: 15000},
		{ID: 11, BasketID: 5, MenuID: 101, Quantity: 1, MenuName: "Es Teh", Price: 20000},
	}
	return basket, items
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("missing_payment_method", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		baskets := mocks.NewBasketRepository(t)
		svc := service.NewOrderService(orders, baskets, nil, nil)

		_, err := svc.Create(ctx, 1, 3, "", "", 0)
		assert.ErrorIs(t, err, service.ErrPaymentMethodRequired)
	})

	t.Run("empty_basket", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		baskets := mocks.NewBasketRepository(t)
		svc := service.NewOrderService(orders, baskets, nil, nil)

		basket := &domain.Basket{ID: 5, ProfileID: 1, RestaurantID: 3}
		baskets.On("Get", 1, 3).Return(basket, nil).Once()
		baskets.On("ListItems", 5).Return([]domain.BasketItem{}, nil).Once()

		_, err := svc.Create(ctx, 1, 3, domain.PaymentCash, "", 0)
		assert.ErrorIs(t, err, service.ErrEmptyBasket)
	})

	t.Run("missing_basket_is_empty", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		baskets := mocks.NewBasketRepository(t)
		svc := service.NewOrderService(orders, baskets, nil, nil)

		baskets.On("Get", 1, 3).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.Create(ctx, 1, 3, domain.PaymentCash, "", 0)
		assert.ErrorIs(t, err, service.ErrEmptyBasket)
	})

	t.Run("basket_load_failure_is_not_an_empty_basket", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		baskets := mocks.NewBasketRepository(t)
		svc := service.NewOrderService(orders, baskets, nil, nil)

		baskets.On("Get", 1, 3).Return(nil, errors.New("db down")).Once()

		_, err := svc.Create(ctx, 1, 3, domain.PaymentCash, "", 0)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrEmptyBasket)
	})

	t.Run("cash_with_coin_discount", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		baskets := mocks.NewBasketRepository(t)
		publisher := mocks.NewChangePublisher(t)
		svc := service.NewOrderService(orders, baskets, publisher, nil)

		basket, items := basketWithItems()
		baskets.On("Get", 1, 3).Return(basket, nil).Once()
		baskets.On("ListItems", 5).Return(items, nil).Once()
		orders.On("Create", mock.Anything, mock.Anything, 5).
			Run(func(args mock.Arguments) {
				order := args.Get(0).(*domain.Order)
				order.ID = 42
				order.CreatedAt = time.Now()
			}).Return(nil).Once()
		publisher.On("Publish", ctx, mock.Anything).Return(nil).Twice()

		order, err := svc.Create(ctx, 1, 3, domain.PaymentCash, "no chili", 5000)
		assert.NoError(t, err)
		assert.Equal(t, 50000, order.OriginalTotal)
		assert.Equal(t, 45000, order.Total)
		assert.Equal(t, 5000, order.CoinsUsed)
		assert.Equal(t, domain.StatusNew, order.Status)
		assert.Len(t, order.Items, 2)
	})

	t.Run("coins_never_push_total_negative", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		baskets := mocks.NewBasketRepository(t)
		publisher := mocks.NewChangePublisher(t)
		svc := service.NewOrderService(orders, baskets, publisher, nil)

		basket, items := basketWithItems()
		baskets.On("Get", 1, 3).Return(basket, nil).Once()
		baskets.On("ListItems", 5).Return(items, nil).Once()
		orders.On("Create", mock.Anything, mock.Anything, 5).Return(nil).Once()
		publisher.On("Publish", ctx, mock.Anything).Return(nil).Twice()

		order, err := svc.Create(ctx, 1, 3, domain.PaymentCash, "", 100000)
		assert.NoError(t, err)
		assert.Equal(t, 0, order.Total)
		assert.Equal(t, 50000, order.CoinsUsed)
		assert.Equal(t, order.OriginalTotal-order.Total, order.CoinsUsed)
	})

	t.Run("qris_starts_pending_and_registers_with_watcher", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		baskets := mocks.NewBasketRepository(t)
		publisher := mocks.NewChangePublisher(t)
		watcher := mocks.NewPendingRegistrar(t)
		svc := service.NewOrderService(orders, baskets, publisher, watcher)

		createdAt := time.Now()
		basket, items := basketWithItems()
		baskets.On("Get", 1, 3).Return(basket, nil).Once()
		baskets.On("ListItems", 5).Return(items, nil).Once()
		orders.On("Create", mock.Anything, mock.Anything, 5).
			Run(func(args mock.Arguments) {
				order := args.Get(0).(*domain.Order)
				order.ID = 77
				order.CreatedAt = createdAt
			}).Return(nil).Once()
		publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()
		watcher.On("Watch", 77, 1, createdAt).Once()

		order, err := svc.Create(ctx, 1, 3, domain.PaymentQRIS, "", 0)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, order.Status)
	})

	t.Run("repository_failure_surfaces", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		baskets := mocks.NewBasketRepository(t)
		svc := service.NewOrderService(orders, baskets, nil, nil)

		basket, items := basketWithItems()
		baskets.On("Get", 1, 3).Return(basket, nil).Once()
		baskets.On("ListItems", 5).Return(items, nil).Once()
		orders.On("Create", mock.Anything, mock.Anything, 5).
			Return(errors.New("db down")).Once()

		_, err := svc.Create(ctx, 1, 3, domain.PaymentCash, "", 0)
		assert.Error(t, err)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()
	cancellable := []domain.OrderStatus{domain.StatusNew, domain.StatusPending}

	t.Run("refunds_coins_with_status_flip", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		publisher := mocks.NewChangePublisher(t)
		svc := service.NewOrderService(orders, nil, publisher, nil)

		orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 1, RestaurantID: 3, Status: domain.StatusNew, CoinsUsed: 150}, nil).Once()
		orders.On("Close", 9, cancellable, domain.StatusCancelled, true).
			Return(true, 1, 150, nil).Once()

		var profileEvent domain.ChangeEvent
		publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool {
			return e.Table == domain.TableOrders
		})).Return(nil).Once()
		publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool {
			if e.Table != domain.TableProfiles {
				return false
			}
			profileEvent = e
			return true
		})).Return(nil).Once()

		assert.NoError(t, svc.Cancel(ctx, 1, 9))
		assert.Equal(t, 150, profileEvent.Coins)
	})

	t.Run("no_coin_event_when_none_spent", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		publisher := mocks.NewChangePublisher(t)
		svc := service.NewOrderService(orders, nil, publisher, nil)

		orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 1, Status: domain.StatusNew}, nil).Once()
		orders.On("Close", 9, cancellable, domain.StatusCancelled, true).
			Return(true, 1, 0, nil).Once()
		publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool {
			return e.Table == domain.TableOrders
		})).Return(nil).Once()

		assert.NoError(t, svc.Cancel(ctx, 1, 9))
	})

	t.Run("rejects_other_users_order", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, nil, nil, nil)

		orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 2}, nil).Once()
		assert.ErrorIs(t, svc.Cancel(ctx, 1, 9), service.ErrNotOrderOwner)
	})

	t.Run("terminal_order_is_not_cancellable", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, nil, nil, nil)

		orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 1, Status: domain.StatusCompleted}, nil).Once()
		orders.On("Close", 9, cancellable, domain.StatusCancelled, true).
			Return(false, 0, 0, nil).Once()

		assert.ErrorIs(t, svc.Cancel(ctx, 1, 9), service.ErrNotCancellable)
	})
}

func TestOrderService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("ready_order_completes", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		publisher := mocks.NewChangePublisher(t)
		svc := service.NewOrderService(orders, nil, publisher, nil)

		orders.On("UpdateStatus", 9, domain.StatusReadyForPickup, domain.StatusCompleted).
			Return(true, nil).Once()
		orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 1, RestaurantID: 3, Status: domain.StatusCompleted}, nil).Once()
		publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		assert.NoError(t, svc.Complete(ctx, 9))
	})

	t.Run("cancelled_order_cannot_complete", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, nil, nil, nil)

		orders.On("UpdateStatus", 9, domain.StatusReadyForPickup, domain.StatusCompleted).
			Return(false, nil).Once()

		assert.ErrorIs(t, svc.Complete(ctx, 9), service.ErrInvalidTransition)
	})
}

func TestOrderService_Advance(t *testing.T) {
	ctx := context.Background()

	t.Run("new_moves_to_cooking", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		publisher := mocks.NewChangePublisher(t)
		svc := service.NewOrderService(orders, nil, publisher, nil)

		orders.On("GetStatus", 9).Return(domain.StatusNew, nil).Once()
		orders.On("UpdateStatus", 9, domain.StatusNew, domain.StatusCooking).Return(true, nil).Once()
		orders.On("Get", 9).Return(&domain.Order{ID: 9, UserID: 1, Status: domain.StatusCooking}, nil).Once()
		publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		next, err := svc.Advance(ctx, 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCooking, next)
	})

	t.Run("terminal_has_no_next", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, nil, nil, nil)

		orders.On("GetStatus", 9).Return(domain.StatusExpired, nil).Once()
		_, err := svc.Advance(ctx, 9)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}

func TestOrderService_ClearHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("soft_deletes_and_reports_true", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		publisher := mocks.NewChangePublisher(t)
		svc := service.NewOrderService(orders, nil, publisher, nil)

		orders.On("SoftDeleteTerminal", 1).Return(int64(3), nil).Once()
		publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		assert.True(t, svc.ClearHistory(ctx, 1))
	})

	t.Run("backend_failure_reports_false", func(t *testing.T) {
		orders := mocks.NewOrderRepository(t)
		svc := service.NewOrderService(orders, nil, nil, nil)

		orders.On("SoftDeleteTerminal", 1).Return(int64(0), errors.New("db down")).Once()
		assert.False(t, svc.ClearHistory(ctx, 1))
	})
}
