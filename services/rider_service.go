package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dinehub/dinehub-api/models"
)

// RiderService is the rider directory: it resolves rider ids within a
// single restaurant's scope.
type RiderService struct {
	db *gorm.DB
}

// NewRiderService creates a rider directory over the given database
func NewRiderService(db *gorm.DB) *RiderService {
	return &RiderService{db: db}
}

// Find resolves a rider id within the given restaurant. A rider belonging
// to another restaurant is reported as not found, not as forbidden.
func (s *RiderService) Find(riderID, restaurantID uint) (*models.Rider, error) {
	var rider models.Rider
	err := s.db.Where("id = ? AND restaurant_id = ?", riderID, restaurantID).First(&rider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRiderNotFound
		}
		return nil, err
	}
	return &rider, nil
}

// List returns all riders of a restaurant, available ones first
func (s *RiderService) List(restaurantID uint) ([]models.Rider, error) {
	var riders []models.Rider
	err := s.db.Where("restaurant_id = ?", restaurantID).
		Order("available DESC, name ASC").
		Find(&riders).Error
	return riders, err
}
