package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"campus-canteen/internal/domain"
)

var (
	ErrOrderNotRatable  = errors.New("order is not completed or not yours to rate")
	ErrDuplicateRating  = errors.New("rating already exists for this order")
	ErrRatingOutOfRange = errors.New("ratings must be between 1 and 5")
)

// RatingService accepts one rating per completed order and keeps a cached
// per-restaurant summary.
type RatingService struct {
	repo      RatingRepository
	cache     RatingCache
	publisher ChangePublisher
}

func NewRatingService(repo RatingRepository, cache RatingCache, publisher ChangePublisher) *RatingService {
	return &RatingService{repo: repo, cache: cache, publisher: publisher}
}

// Submit inserts a rating. Ratings are insert-once: resubmission for the same
// order is rejected, first by the cache marker, then by the durable check.
func (s *RatingService) Submit(ctx context.Context, rating *domain.Rating) error {
	if rating.ServiceRating < 1 || rating.ServiceRating > 5 ||
		rating.FoodQualityRating < 1 || rating.FoodQualityRating > 5 {
		return ErrRatingOutOfRange
	}

	valid, err := s.repo.ValidateCompletedOrder(rating.UserID, rating.OrderID, rating.RestaurantID)
	if err != nil {
		return fmt.Errorf("failed to validate order: %w", err)
	}
	if !valid {
		return ErrOrderNotRatable
	}

	if exists, _ := s.cache.MarkerExists(ctx, rating.OrderID); exists {
		return ErrDuplicateRating
	}
	exists, err := s.repo.ExistsForOrder(rating.OrderID)
	if err != nil {
		return fmt.Errorf("failed to check existing rating: %w", err)
	}
	if exists {
		return ErrDuplicateRating
	}

	if err := s.repo.Insert(rating); err != nil {
		return err
	}

	_ = s.cache.SetMarker(ctx, rating.OrderID)
	if err := s.cache.InvalidateSummary(ctx, rating.RestaurantID); err != nil {
		log.Printf("Warning: failed to invalidate rating summary for restaurant %d: %v", rating.RestaurantID, err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, domain.ChangeEvent{
			Table:        domain.TableRatings,
			Type:         domain.EventInsert,
			UserID:       rating.UserID,
			OrderID:      rating.OrderID,
			RestaurantID: rating.RestaurantID,
			Timestamp:    time.Now(),
		})
	}
	return nil
}

// RestaurantSummary serves the cached aggregate unless the cache misses or
// the caller forces a refresh. The SQL aggregate itself defines the empty
// set as zeros.
func (s *RatingService) RestaurantSummary(ctx context.Context, restaurantID int, forceRefresh bool) (*domain.RatingSummary, error) {
	if !forceRefresh {
		cached, ok, err := s.cache.GetSummary(ctx, restaurantID)
		if err != nil {
			log.Printf("Warning: rating summary cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	summary, err := s.repo.Summary(restaurantID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetSummary(ctx, summary); err != nil {
		log.Printf("Warning: failed to cache rating summary for restaurant %d: %v", restaurantID, err)
	}
	return summary, nil
}

func (s *RatingService) RestaurantRatings(restaurantID int) ([]domain.Rating, error) {
	return s.repo.ByRestaurant(restaurantID)
}

func (s *RatingService) ByOrder(orderID int) (*domain.Rating, error) {
	return s.repo.ByOrder(orderID)
}

func (s *RatingService) ByUser(userID int) ([]domain.Rating, error) {
	return s.repo.ByUser(userID)
}

var _ RatingServiceInterface = (*RatingService)(nil)
