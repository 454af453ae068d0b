package domain

import "time"

type User struct {
	ID               int        `json:"id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	ResetRequestedAt *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Profile mirrors the authenticated user inside the application schema.
// Coins is the loyalty balance spendable as a partial discount; it is only
// ever mutated atomically together with the order write that justifies it.
type Profile struct {
	ID        int       `json:"id"`
	FullName  string    `json:"full_name"`
	Coins     int       `json:"coins"`
	CreatedAt time.Time `json:"created_at"`
}

type Restaurant struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Menu struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int       `json:"price"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// Basket is the per-(user, restaurant) cart. At most one exists per pair;
// it is created lazily on the first add and deleted outright on clear or
// order placement.
type Basket struct {
	ID           int       `json:"id"`
	ProfileID    int       `json:"profile_id"`
	RestaurantID int       `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type BasketItem struct {
	ID       int    `json:"id"`
	BasketID int    `json:"basket_id"`
	MenuID   int    `json:"menu_id"`
	Quantity int    `json:"quantity"`
	MenuName string `json:"menu_name"`
	Price    int    `json:"price"`
}

// BasketTotal is the derived basket price. It is never stored.
func BasketTotal(items []BasketItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity * item.Price
	}
	return total
}

type Order struct {
	ID             int           `json:"id"`
	UserID         int           `json:"user_id"`
	RestaurantID   int           `json:"restaurant_id"`
	RestaurantName string        `json:"restaurant_name,omitempty"`
	Status         OrderStatus   `json:"status"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	OriginalTotal  int           `json:"original_total"`
	Total          int           `json:"total"`
	CoinsUsed      int           `json:"coins_used"`
	Notes          string        `json:"notes,omitempty"`
	IsDeleted      bool          `json:"-"`
	Items          []OrderItem   `json:"items,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// OrderItem is a frozen snapshot of one basket line: name and price are
// copied at placement time so later menu edits cannot rewrite history.
type OrderItem struct {
	ID       int    `json:"id"`
	OrderID  int    `json:"order_id"`
	MenuID   int    `json:"menu_id"`
	Quantity int    `json:"quantity"`
	MenuName string `json:"menu_name"`
	Price    int    `json:"price"`
}

type Rating struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	RestaurantID      int       `json:"restaurant_id"`
	OrderID           int       `json:"order_id"`
	ServiceRating     int       `json:"service_rating"`
	FoodQualityRating int       `json:"food_quality_rating"`
	Review            string    `json:"review,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// RatingSummary averages are 0 for a restaurant with no ratings, never NaN.
type RatingSummary struct {
	RestaurantID   int     `json:"restaurant_id"`
	AvgService     float64 `json:"avg_service_rating"`
	AvgFoodQuality float64 `json:"avg_food_quality_rating"`
	Count          int     `json:"count"`
}
