package storage

import (
	"database/sql"

	"campus-canteen/internal/domain"
)

type BasketRepository struct {
	DB *sql.DB
}

func NewBasketRepository(db *sql.DB) *BasketRepository {
	return &BasketRepository{DB: db}
}

// Get returns the user's basket for a restaurant, or sql.ErrNoRows when none
// exists yet. Baskets are created lazily by GetOrCreate on the first add.
func (r *BasketRepository) Get(profileID, restaurantID int) (*domain.Basket, error) {
	var basket domain.Basket
	err := r.DB.QueryRow(
		"SELECT id, profile_id, restaurant_id, created_at FROM baskets WHERE profile_id = $1 AND restaurant_id = $2",
		profileID, restaurantID,
	).Scan(&basket.ID, &basket.ProfileID, &basket.RestaurantID, &basket.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &basket, nil
}

func (r *BasketRepository) GetOrCreate(profileID, restaurantID int) (*domain.Basket, error) {
	basket, err := r.Get(profileID, restaurantID)
	if err == nil {
		return basket, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	basket = &domain.Basket{ProfileID: profileID, RestaurantID: restaurantID}
	err = r.DB.QueryRow(
		"INSERT INTO baskets (profile_id, restaurant_id) VALUES ($1, $2) RETURNING id, created_at",
		profileID, restaurantID,
	).Scan(&basket.ID, &basket.CreatedAt)
	if err != nil {
		return nil, err
	}
	return basket, nil
}

func (r *BasketRepository) ListItems(basketID int) ([]domain.BasketItem, error) {
	rows, err := r.DB.Query(`
		SELECT bi.id, bi.basket_id, bi.menu_id, bi.quantity, m.name, m.price
		FROM basket_items bi
		JOIN menus m ON m.id = bi.menu_id
		WHERE bi.basket_id = $1
		ORDER BY bi.id`, basketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.BasketItem
	for rows.Next() {
		var item domain.BasketItem
		if err := rows.Scan(&item.ID, &item.BasketID, &item.MenuID, &item.Quantity, &item.MenuName, &item.Price); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// GetItemByMenu finds an existing line for a menu item so repeated adds merge
// into one line instead of duplicating it.
func (r *BasketRepository) GetItemByMenu(basketID, menuID int) (*domain.BasketItem, error) {
	var item domain.BasketItem
	err := r.DB.QueryRow(`
		SELECT bi.id, bi.basket_id, bi.menu_id, bi.quantity, m.name, m.price
		FROM basket_items bi
		JOIN menus m ON m.id = bi.menu_id
		WHERE bi.basket_id = $1 AND bi.menu_id = $2`, basketID, menuID).
		Scan(&item.ID, &item.BasketID, &item.MenuID, &item.Quantity, &item.MenuName, &item.Price)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *BasketRepository) InsertItem(item *domain.BasketItem) error {
	return r.DB.QueryRow(
		"INSERT INTO basket_items (basket_id, menu_id, quantity) VALUES ($1, $2, $3) RETURNING id",
		item.BasketID, item.MenuID, item.Quantity,
	).Scan(&item.ID)
}

func (r *BasketRepository) UpdateItemQuantity(itemID, quantity int) error {
	_, err := r.DB.Exec("UPDATE basket_items SET quantity = $1 WHERE id = $2", quantity, itemID)
	return err
}

func (r *BasketRepository) DeleteItem(itemID int) error {
	_, err := r.DB.Exec("DELETE FROM basket_items WHERE id = $1", itemID)
	return err
}

// Delete removes the basket row and its lines. Clearing deletes the basket
// outright rather than leaving an empty row behind.
func (r *BasketRepository) Delete(basketID int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM basket_items WHERE basket_id = $1", basketID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM baskets WHERE id = $1", basketID); err != nil {
		return err
	}
	return tx.Commit()
}
