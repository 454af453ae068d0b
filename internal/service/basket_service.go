package service

import (
	"database/sql"
	"errors"

	"campus-canteen/internal/domain"
)

var (
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrMenuNotInRestaurant = errors.New("menu item does not belong to this restaurant")
	ErrBasketNotFound      = errors.New("no active basket")
)

type BasketService struct {
	baskets BasketRepository
	catalog CatalogRepository
}

func NewBasketService(baskets BasketRepository, catalog CatalogRepository) *BasketService {
	return &BasketService{baskets: baskets, catalog: catalog}
}

// ActiveBasket returns the user's basket for a restaurant with its lines.
// A missing basket is not an error: an empty line set is returned.
func (s *BasketService) ActiveBasket(userID, restaurantID int) (*domain.Basket, []domain.BasketItem, error) {
	basket, err := s.baskets.Get(userID, restaurantID)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	items, err := s.baskets.ListItems(basket.ID)
	if err != nil {
		return nil, nil, err
	}
	return basket, items, nil
}

// AddItem puts quantity of a menu item into the basket, merging with an
// existing line for the same item. The basket is created lazily on the first
// add. Lines always reference menus of the basket's own restaurant.
func (s *BasketService) AddItem(userID, restaurantID, menuID, quantity int) ([]domain.BasketItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	menu, err := s.catalog.GetMenu(menuID)
	if err != nil {
		return nil, err
	}
	if menu.RestaurantID != restaurantID {
		return nil, ErrMenuNotInRestaurant
	}

	basket, err := s.baskets.GetOrCreate(userID, restaurantID)
	if err != nil {
		return nil, err
	}

	existing, err := s.baskets.GetItemByMenu(basket.ID, menuID)
	switch {
	case err == nil:
		if err := s.baskets.UpdateItemQuantity(existing.ID, existing.Quantity+quantity); err != nil {
			return nil, err
		}
	case err == sql.ErrNoRows:
		item := &domain.BasketItem{BasketID: basket.ID, MenuID: menuID, Quantity: quantity}
		if err := s.baskets.InsertItem(item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.baskets.ListItems(basket.ID)
}

// UpdateItemQuantity sets a line's quantity; zero or less removes the line.
func (s *BasketService) UpdateItemQuantity(itemID, quantity int) error {
	if quantity <= 0 {
		return s.baskets.DeleteItem(itemID)
	}
	return s.baskets.UpdateItemQuantity(itemID, quantity)
}

// Clear deletes the basket row and everything in it.
func (s *BasketService) Clear(userID, restaurantID int) error {
	basket, err := s.baskets.Get(userID, restaurantID)
	if err == sql.ErrNoRows {
		return ErrBasketNotFound
	}
	if err != nil {
		return err
	}
	return s.baskets.Delete(basket.ID)
}

var _ BasketServiceInterface = (*BasketService)(nil)
