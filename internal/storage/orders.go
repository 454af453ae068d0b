package storage

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"campus-canteen/internal/domain"
)

var (
	// ErrInsufficientCoins means the coin debit guard refused the write: the
	// profile does not hold the coins the order tries to spend.
	ErrInsufficientCoins = errors.New("profile does not hold enough coins")
)

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// Create persists the order, its line snapshots, the coin debit and the
// basket removal as one transaction. Either the whole placement lands or
// nothing does; there is no window where an order row exists without lines
// or a debit without an order.
func (r *OrderRepository) Create(order *domain.Order, items []domain.OrderItem, basketID int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO orders (user_id, restaurant_id, status, payment_method, original_total, total, coins_used, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		order.UserID, order.RestaurantID, string(order.Status), string(order.PaymentMethod),
		order.OriginalTotal, order.Total, order.CoinsUsed, order.Notes,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return err
	}

	for i := range items {
		items[i].OrderID = order.ID
		err = tx.QueryRow(
			"INSERT INTO order_items (order_id, menu_id, quantity, menu_name, price) VALUES ($1, $2, $3, $4, $5) RETURNING id",
			order.ID, items[i].MenuID, items[i].Quantity, items[i].MenuName, items[i].Price,
		).Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}

	if order.CoinsUsed > 0 {
		result, err := tx.Exec(
			"UPDATE profiles SET coins = coins - $1 WHERE id = $2 AND coins >= $1",
			order.CoinsUsed, order.UserID,
		)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientCoins
		}
	}

	if _, err := tx.Exec("DELETE FROM basket_items WHERE basket_id = $1", basketID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM baskets WHERE id = $1", basketID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	order.Items = items
	return nil
}

// Close moves an order into a terminal state and, when the order spent coins,
// credits them back to the owning profile in the same transaction. The status
// update is conditional on the current status still being one of from: when a
// concurrent writer already closed the order, zero rows match, no coin moves,
// and closed=false is returned. That makes Close safe to fire from the
// countdown, the change feed and the manual check simultaneously.
func (r *OrderRepository) Close(orderID int, from []domain.OrderStatus, to domain.OrderStatus, refundCoins bool) (closed bool, userID, coinsUsed int, err error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, 0, 0, err
	}
	defer tx.Rollback()

	states := make([]string, len(from))
	for i, s := range from {
		states[i] = string(s)
	}

	err = tx.QueryRow(`
		UPDATE orders SET status = $1
		WHERE id = $2 AND status = ANY($3)
		RETURNING user_id, coins_used`,
		string(to), orderID, pq.Array(states),
	).Scan(&userID, &coinsUsed)
	if err == sql.ErrNoRows {
		return false, 0, 0, nil
	}
	if err != nil {
		return false, 0, 0, err
	}

	if refundCoins && coinsUsed > 0 {
		if _, err := tx.Exec(
			"UPDATE profiles SET coins = coins + $1 WHERE id = $2",
			coinsUsed, userID,
		); err != nil {
			return false, 0, 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, 0, 0, err
	}
	return true, userID, coinsUsed, nil
}

// UpdateStatus performs a guarded non-terminal transition. closed orders and
// out-of-order transitions match zero rows.
func (r *OrderRepository) UpdateStatus(orderID int, from, to domain.OrderStatus) (bool, error) {
	result, err := r.DB.Exec(
		"UPDATE orders SET status = $1 WHERE id = $2 AND status = $3",
		string(to), orderID, string(from),
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *OrderRepository) Get(orderID int) (*domain.Order, error) {
	var order domain.Order
	var status, method string
	err := r.DB.QueryRow(`
		SELECT o.id, o.user_id, o.restaurant_id, r.name, o.status, o.payment_method,
		       o.original_total, o.total, o.coins_used, COALESCE(o.notes, ''), o.is_deleted, o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = $1`, orderID).
		Scan(&order.ID, &order.UserID, &order.RestaurantID, &order.RestaurantName, &status, &method,
			&order.OriginalTotal, &order.Total, &order.CoinsUsed, &order.Notes, &order.IsDeleted, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatus(status)
	order.PaymentMethod = domain.PaymentMethod(method)

	rows, err := r.DB.Query(
		"SELECT id, order_id, menu_id, quantity, menu_name, price FROM order_items WHERE order_id = $1 ORDER BY id",
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuID, &item.Quantity, &item.MenuName, &item.Price); err != nil {
			continue
		}
		order.Items = append(order.Items, item)
	}
	return &order, nil
}

func (r *OrderRepository) GetStatus(orderID int) (domain.OrderStatus, error) {
	var status string
	err := r.DB.QueryRow("SELECT status FROM orders WHERE id = $1", orderID).Scan(&status)
	if err != nil {
		return "", err
	}
	return domain.OrderStatus(status), nil
}

// List returns the user's visible orders, newest first. Soft-deleted rows are
// filtered out here but stay reachable through Get by id.
func (r *OrderRepository) List(userID int) ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT o.id, o.user_id, o.restaurant_id, r.name, o.status, o.payment_method,
		       o.original_total, o.total, o.coins_used, COALESCE(o.notes, ''), o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.user_id = $1 AND o.is_deleted = false
		ORDER BY o.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var status, method string
		if err := rows.Scan(&order.ID, &order.UserID, &order.RestaurantID, &order.RestaurantName,
			&status, &method, &order.OriginalTotal, &order.Total, &order.CoinsUsed,
			&order.Notes, &order.CreatedAt); err != nil {
			continue
		}
		order.Status = domain.OrderStatus(status)
		order.PaymentMethod = domain.PaymentMethod(method)
		orders = append(orders, order)
	}
	return orders, nil
}

// SoftDeleteTerminal hides all of the user's closed orders from List. Rows are
// kept so ratings keep a valid order to point at.
func (r *OrderRepository) SoftDeleteTerminal(userID int) (int64, error) {
	terminal := []string{
		string(domain.StatusCompleted),
		string(domain.StatusCancelled),
		string(domain.StatusExpired),
	}
	result, err := r.DB.Exec(
		"UPDATE orders SET is_deleted = true WHERE user_id = $1 AND status = ANY($2)",
		userID, pq.Array(terminal),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListPending returns open QRIS orders for the payment watcher's recovery
// scan at startup.
func (r *OrderRepository) ListPending() ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT id, user_id, restaurant_id, total, created_at
		FROM orders
		WHERE status = $1
		ORDER BY created_at`, string(domain.StatusPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.RestaurantID, &order.Total, &order.CreatedAt); err != nil {
			continue
		}
		order.Status = domain.StatusPending
		order.PaymentMethod = domain.PaymentQRIS
		orders = append(orders, order)
	}
	return orders, nil
}
