package storage

import (
	"database/sql"

	"campus-canteen/internal/domain"
)

type CatalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListRestaurants() ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, COALESCE(address, ''), COALESCE(description, ''), COALESCE(image_url, ''), created_at
		FROM restaurants
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Description, &rest.ImageURL, &rest.CreatedAt); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, nil
}

func (r *CatalogRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRow(`
		SELECT id, name, COALESCE(address, ''), COALESCE(description, ''), COALESCE(image_url, ''), created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Description, &rest.ImageURL, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *CatalogRepository) ListMenus(restaurantID int) ([]domain.Menu, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(image_url, ''), created_at
		FROM menus
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []domain.Menu
	for rows.Next() {
		var menu domain.Menu
		if err := rows.Scan(&menu.ID, &menu.RestaurantID, &menu.Name, &menu.Description, &menu.Price, &menu.ImageURL, &menu.CreatedAt); err != nil {
			continue
		}
		menus = append(menus, menu)
	}
	return menus, nil
}

func (r *CatalogRepository) GetMenu(id int) (*domain.Menu, error) {
	var menu domain.Menu
	err := r.DB.QueryRow(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(image_url, ''), created_at
		FROM menus
		WHERE id = $1`, id).
		Scan(&menu.ID, &menu.RestaurantID, &menu.Name, &menu.Description, &menu.Price, &menu.ImageURL, &menu.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &menu, nil
}
