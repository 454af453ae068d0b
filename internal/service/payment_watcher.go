package service

import (
	"context"
	"log"
	"sync"
	"time"

	"campus-canteen/internal/domain"
)

// Signal sources reconciled by the watcher. Whichever fires first wins; the
// others become no-ops against the already-closed order.
const (
	SourceTimer    = "timer"
	SourceRealtime = "realtime"
	SourceManual   = "manual"
)

type watchedOrder struct {
	userID   int
	deadline time.Time
}

// PaymentWatcher enforces the QRIS payment window. Every PENDING order is
// tracked against an absolute deadline (created_at + window); remaining time
// is always recomputed from that deadline, never counted down, so process
// stalls cannot stretch the window. Expiry, the change feed and manual status
// checks all funnel through ApplyStatus, and the expiry write itself is a
// guarded transition that loses gracefully to any concurrent closer.
type PaymentWatcher struct {
	orders    OrderRepository
	publisher ChangePublisher
	window    time.Duration

	now  func() time.Time
	tick time.Duration

	mu      sync.Mutex
	pending map[int]watchedOrder
}

func NewPaymentWatcher(orders OrderRepository, publisher ChangePublisher, window time.Duration) *PaymentWatcher {
	return &PaymentWatcher{
		orders:    orders,
		publisher: publisher,
		window:    window,
		now:       time.Now,
		tick:      time.Second,
		pending:   make(map[int]watchedOrder),
	}
}

// Start recovers orders that were already PENDING before this process came
// up, then sweeps once per tick until the context is cancelled.
func (w *PaymentWatcher) Start(ctx context.Context) {
	w.recover()

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

func (w *PaymentWatcher) recover() {
	orders, err := w.orders.ListPending()
	if err != nil {
		log.Printf("Payment watcher recovery scan failed: %v", err)
		return
	}
	for _, order := range orders {
		w.Watch(order.ID, order.UserID, order.CreatedAt)
	}
	if len(orders) > 0 {
		log.Printf("Payment watcher adopted %d pending orders", len(orders))
	}
}

// Watch registers a PENDING order. The deadline derives from the order's own
// creation time, so re-watching after a restart keeps the original window.
func (w *PaymentWatcher) Watch(orderID, userID int, createdAt time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[orderID] = watchedOrder{userID: userID, deadline: createdAt.Add(w.window)}
}

// ApplyStatus is the single entry point for every status signal about a
// watched order. Anything other than PENDING means the payment race is over:
// the order is dropped from tracking and the watcher will never write to it.
func (w *PaymentWatcher) ApplyStatus(orderID int, status domain.OrderStatus, source string) {
	if status == domain.StatusPending {
		return
	}
	w.mu.Lock()
	_, tracked := w.pending[orderID]
	delete(w.pending, orderID)
	w.mu.Unlock()
	if tracked {
		log.Printf("Order %d left PENDING (-> %s) via %s", orderID, status, source)
	}
}

// CheckNow re-reads the order row directly, bypassing the change feed. This
// is the fallback for lost realtime delivery: a closed state found here is
// treated exactly like a pushed one, and an overdue order is expired on the
// spot. A PENDING order the watcher is not tracking (a failed recovery scan
// only logs) is re-adopted from the row's own created_at, so the manual check
// can still expire it.
func (w *PaymentWatcher) CheckNow(ctx context.Context, orderID int) (domain.OrderStatus, error) {
	status, err := w.orders.GetStatus(orderID)
	if err != nil {
		return "", err
	}
	w.ApplyStatus(orderID, status, SourceManual)
	if status != domain.StatusPending {
		return status, nil
	}

	if !w.tracked(orderID) {
		order, err := w.orders.Get(orderID)
		if err != nil {
			log.Printf("Failed to re-adopt pending order %d: %v", orderID, err)
			return status, nil
		}
		w.Watch(order.ID, order.UserID, order.CreatedAt)
	}

	if w.overdue(orderID) {
		if w.expire(ctx, orderID) {
			return domain.StatusExpired, nil
		}
		// Lost the race to a concurrent writer; report what the row says now.
		return w.orders.GetStatus(orderID)
	}
	return status, nil
}

// TimeLeft reports the remaining payment window, clamped at zero.
func (w *PaymentWatcher) TimeLeft(orderID int) (time.Duration, bool) {
	w.mu.Lock()
	order, ok := w.pending[orderID]
	w.mu.Unlock()
	if !ok {
		return 0, false
	}
	left := order.deadline.Sub(w.now())
	if left < 0 {
		left = 0
	}
	return left, true
}

// Sweep expires every tracked order whose deadline has passed.
func (w *PaymentWatcher) Sweep(ctx context.Context) {
	now := w.now()

	w.mu.Lock()
	var due []int
	for orderID, order := range w.pending {
		if !order.deadline.After(now) {
			due = append(due, orderID)
		}
	}
	w.mu.Unlock()

	for _, orderID := range due {
		w.expire(ctx, orderID)
	}
}

// expire performs the guarded PENDING -> EXPIRED transition with coin refund.
// Zero rows affected means a concurrent signal already closed the order; the
// watcher just stops tracking it. Returns whether this call did the close.
func (w *PaymentWatcher) expire(ctx context.Context, orderID int) bool {
	closed, userID, coinsUsed, err := w.orders.Close(orderID,
		[]domain.OrderStatus{domain.StatusPending}, domain.StatusExpired, true)
	if err != nil {
		// Keep tracking; the next sweep retries.
		log.Printf("Failed to expire order %d: %v", orderID, err)
		return false
	}

	w.mu.Lock()
	delete(w.pending, orderID)
	w.mu.Unlock()

	if !closed {
		return false
	}

	log.Printf("Order %d expired after payment window via %s", orderID, SourceTimer)
	w.publish(ctx, domain.ChangeEvent{
		Table:   domain.TableOrders,
		Type:    domain.EventUpdate,
		UserID:  userID,
		OrderID: orderID,
		Status:  domain.StatusExpired,
	})
	if coinsUsed > 0 {
		w.publish(ctx, domain.ChangeEvent{
			Table:  domain.TableProfiles,
			Type:   domain.EventUpdate,
			UserID: userID,
			Coins:  coinsUsed,
		})
	}
	return true
}

func (w *PaymentWatcher) tracked(orderID int) bool {
	w.mu.Lock()
	_, ok := w.pending[orderID]
	w.mu.Unlock()
	return ok
}

func (w *PaymentWatcher) overdue(orderID int) bool {
	w.mu.Lock()
	order, tracked := w.pending[orderID]
	w.mu.Unlock()
	return tracked && !order.deadline.After(w.now())
}

func (w *PaymentWatcher) publish(ctx context.Context, event domain.ChangeEvent) {
	if w.publisher == nil {
		return
	}
	event.Timestamp = time.Now()
	if err := w.publisher.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish change event: %v", err)
	}
}

var _ PendingRegistrar = (*PaymentWatcher)(nil)
