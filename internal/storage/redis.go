package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"campus-canteen/internal/domain"
)

// RatingCache keeps per-restaurant rating summaries and duplicate-submission
// markers in Redis.
type RatingCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRatingCache(client *redis.Client, ttl time.Duration) *RatingCache {
	return &RatingCache{Client: client, TTL: ttl}
}

func (c *RatingCache) SummaryKey(restaurantID int) string {
	return "rating:summary:" + strconv.Itoa(restaurantID)
}

func (c *RatingCache) MarkerKey(orderID int) string {
	return "rating:order:" + strconv.Itoa(orderID)
}

func (c *RatingCache) GetSummary(ctx context.Context, restaurantID int) (*domain.RatingSummary, bool, error) {
	fields, err := c.Client.HGetAll(ctx, c.SummaryKey(restaurantID)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(fields) == 0 {
		return nil, false, nil
	}

	avgService, _ := strconv.ParseFloat(fields["avg_service"], 64)
	avgFood, _ := strconv.ParseFloat(fields["avg_food_quality"], 64)
	count, _ := strconv.Atoi(fields["count"])

	return &domain.RatingSummary{
		RestaurantID:   restaurantID,
		AvgService:     avgService,
		AvgFoodQuality: avgFood,
		Count:          count,
	}, true, nil
}

func (c *RatingCache) SetSummary(ctx context.Context, summary *domain.RatingSummary) error {
	key := c.SummaryKey(summary.RestaurantID)
	if err := c.Client.HSet(ctx, key, map[string]interface{}{
		"avg_service":      summary.AvgService,
		"avg_food_quality": summary.AvgFoodQuality,
		"count":            summary.Count,
		"last_updated":     time.Now().Unix(),
	}).Err(); err != nil {
		return err
	}
	return c.Client.Expire(ctx, key, c.TTL).Err()
}

func (c *RatingCache) InvalidateSummary(ctx context.Context, restaurantID int) error {
	return c.Client.Del(ctx, c.SummaryKey(restaurantID)).Err()
}

func (c *RatingCache) MarkerExists(ctx context.Context, orderID int) (bool, error) {
	res, err := c.Client.Exists(ctx, c.MarkerKey(orderID)).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RatingCache) SetMarker(ctx context.Context, orderID int) error {
	return c.Client.Set(ctx, c.MarkerKey(orderID), "1", c.TTL).Err()
}
