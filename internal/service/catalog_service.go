package service

import "campus-canteen/internal/domain"

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Restaurants() ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants()
}

func (s *CatalogService) Restaurant(id int) (*domain.Restaurant, error) {
	return s.repo.GetRestaurant(id)
}

func (s *CatalogService) Menus(restaurantID int) ([]domain.Menu, error) {
	return s.repo.ListMenus(restaurantID)
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
