package review

import (
	"context"
	"errors"
	"fmt"

	"campusstay/logger"
	accommodationModel "campusstay/models/accommodation"
	bookingModel "campusstay/models/booking"
	reviewModel "campusstay/models/review"

	"gorm.io/gorm"
)

var (
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrNotAllowed            = errors.New("a paid booking is required before reviewing")
	ErrAlreadyReviewed       = errors.New("accommodation already reviewed by this user")
)

// Service enforces the review gate: one review per (user, accommodation)
// pair, and only after a paid booking.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Submit inserts a review after checking the gate conditions.
func (s *Service) Submit(ctx context.Context, userID, accommodationID uint, rating int, comment string) (*reviewModel.Review, error) {
	var r reviewModel.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acc accommodationModel.Accommodation
		if err := tx.First(&acc, accommodationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccommodationNotFound
			}
			return err
		}

		var paidBookings int64
		if err := tx.Model(&bookingModel.Booking{}).
			Where("user_id = ? AND accommodation_id = ? AND status = ?",
				userID, accommodationID, bookingModel.BookingStatusPaid).
			Count(&paidBookings).Error; err != nil {
			return err
		}
		if paidBookings == 0 {
			return ErrNotAllowed
		}

		var existing int64
		if err := tx.Model(&reviewModel.Review{}).
			Where("user_id = ? AND accommodation_id = ?", userID, accommodationID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyReviewed
		}

		r = reviewModel.Review{
			UserID:          userID,
			AccommodationID: accommodationID,
			Rating:          rating,
			Comment:         comment,
		}
		return tx.Create(&r).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Review submitted by user %d for accommodation %d", userID, accommodationID))
	return &r, nil
}

// ListForAccommodation returns the reviews of a listing, newest first.
func (s *Service) ListForAccommodation(ctx context.Context, accommodationID uint) ([]reviewModel.Review, error) {
	var reviews []reviewModel.Review
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("accommodation_id = ?", accommodationID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// AverageRating returns the mean rating of a listing, 0 when unreviewed.
func (s *Service) AverageRating(ctx context.Context, accommodationID uint) (float64, error) {
	var avg *float64
	err := s.db.WithContext(ctx).Model(&reviewModel.Review{}).
		Where("accommodation_id = ?", accommodationID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
