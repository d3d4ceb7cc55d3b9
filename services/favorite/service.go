package favorite

import (
	"context"
	"errors"
	"fmt"

	"campusstay/logger"
	accommodationModel "campusstay/models/accommodation"
	favoriteModel "campusstay/models/favorite"

	"gorm.io/gorm"
)

var ErrAccommodationNotFound = errors.New("accommodation not found")

// Service manages the favorites membership set.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Toggle flips a (user, accommodation) membership: insert if absent, delete
// if present. Returns true when the accommodation is a favorite afterwards.
func (s *Service) Toggle(ctx context.Context, userID, accommodationID uint) (bool, error) {
	var isFavorite bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acc accommodationModel.Accommodation
		if err := tx.First(&acc, accommodationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccommodationNotFound
			}
			return err
		}

		var fav favoriteModel.Favorite
		err := tx.Where("user_id = ? AND accommodation_id = ?", userID, accommodationID).First(&fav).Error
		switch {
		case err == nil:
			if err := tx.Delete(&fav).Error; err != nil {
				return err
			}
			isFavorite = false
			logger.Info(fmt.Sprintf("User %d removed favorite %d", userID, accommodationID))
		case errors.Is(err, gorm.ErrRecordNotFound):
			fav = favoriteModel.Favorite{UserID: userID, AccommodationID: accommodationID}
			if err := tx.Create(&fav).Error; err != nil {
				return err
			}
			isFavorite = true
			logger.Info(fmt.Sprintf("User %d added favorite %d", userID, accommodationID))
		default:
			return err
		}
		return nil
	})
	return isFavorite, err
}

// IsFavorite reports the current membership state.
func (s *Service) IsFavorite(ctx context.Context, userID, accommodationID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&favoriteModel.Favorite{}).
		Where("user_id = ? AND accommodation_id = ?", userID, accommodationID).
		Count(&count).Error
	return count > 0, err
}

// ListAccommodations returns the active accommodations the user favorited.
func (s *Service) ListAccommodations(ctx context.Context, userID uint) ([]accommodationModel.Accommodation, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&favoriteModel.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("accommodation_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []accommodationModel.Accommodation{}, nil
	}

	var accommodations []accommodationModel.Accommodation
	err = s.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&accommodations).Error
	return accommodations, err
}
