package storage

import (
	"database/sql"

	"campus-canteen/internal/domain"
)

type RatingRepository struct {
	DB *sql.DB
}

func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// ValidateCompletedOrder checks that the order exists, belongs to the user,
// was placed at this restaurant and has reached COMPLETED. Only such orders
// may be rated.
func (r *RatingRepository) ValidateCompletedOrder(userID, orderID, restaurantID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM orders
			WHERE id = $1 AND user_id = $2 AND restaurant_id = $3 AND status = $4
		)`, orderID, userID, restaurantID, string(domain.StatusCompleted)).Scan(&exists)
	return exists, err
}

func (r *RatingRepository) ExistsForOrder(orderID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM ratings WHERE order_id = $1)", orderID,
	).Scan(&exists)
	return exists, err
}

func (r *RatingRepository) Insert(rating *domain.Rating) error {
	return r.DB.QueryRow(`
		INSERT INTO ratings (user_id, restaurant_id, order_id, service_rating, food_quality_rating, review)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		rating.UserID, rating.RestaurantID, rating.OrderID,
		rating.ServiceRating, rating.FoodQualityRating, rating.Review,
	).Scan(&rating.ID, &rating.CreatedAt)
}

func (r *RatingRepository) ByOrder(orderID int) (*domain.Rating, error) {
	var rating domain.Rating
	err := r.DB.QueryRow(`
		SELECT id, user_id, restaurant_id, order_id, service_rating, food_quality_rating, COALESCE(review, ''), created_at
		FROM ratings
		WHERE order_id = $1`, orderID).
		Scan(&rating.ID, &rating.UserID, &rating.RestaurantID, &rating.OrderID,
			&rating.ServiceRating, &rating.FoodQualityRating, &rating.Review, &rating.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) ByUser(userID int) ([]domain.Rating, error) {
	rows, err := r.DB.Query(`
		SELECT id, user_id, restaurant_id, order_id, service_rating, food_quality_rating, COALESCE(review, ''), created_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(&rating.ID, &rating.UserID, &rating.RestaurantID, &rating.OrderID,
			&rating.ServiceRating, &rating.FoodQualityRating, &rating.Review, &rating.CreatedAt); err != nil {
			continue
		}
		ratings = append(ratings, rating)
	}
	return ratings, nil
}

func (r *RatingRepository) ByRestaurant(restaurantID int) ([]domain.Rating, error) {
	rows, err := r.DB.Query(`
		SELECT id, user_id, restaurant_id, order_id, service_rating, food_quality_rating, COALESCE(review, ''), created_at
		FROM ratings
		WHERE restaurant_id = $1
		ORDER BY created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(&rating.ID, &rating.UserID, &rating.RestaurantID, &rating.OrderID,
			&rating.ServiceRating, &rating.FoodQualityRating, &rating.Review, &rating.CreatedAt); err != nil {
			continue
		}
		ratings = append(ratings, rating)
	}
	return ratings, nil
}

// Summary aggregates in SQL with COALESCE so a restaurant with zero ratings
// reports averages of 0 rather than a NULL scan failure.
func (r *RatingRepository) Summary(restaurantID int) (*domain.RatingSummary, error) {
	summary := domain.RatingSummary{RestaurantID: restaurantID}
	err := r.DB.QueryRow(`
		SELECT COALESCE(ROUND(AVG(service_rating::numeric), 2), 0),
		       COALESCE(ROUND(AVG(food_quality_rating::numeric), 2), 0),
		       COUNT(*)
		FROM ratings
		WHERE restaurant_id = $1`, restaurantID).
		Scan(&summary.AvgService, &summary.AvgFoodQuality, &summary.Count)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
