package stats

import (
	"context"

	accommodationModel "campusstay/models/accommodation"
	bookingModel "campusstay/models/booking"
	userModel "campusstay/models/user"

	"gorm.io/gorm"
)

// DashboardStats holds the admin dashboard aggregates.
type DashboardStats struct {
	TotalUsers           int64   `json:"total_users"`
	TotalAccommodations  int64   `json:"total_accommodations"`
	ActiveAccommodations int64   `json:"active_accommodations"`
	TotalBookings        int64   `json:"total_bookings"`
	PaidBookings         int64   `json:"paid_bookings"`
	TotalRevenue         float64 `json:"total_revenue"`
}

// Service computes admin dashboard aggregates.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Dashboard returns counts over users, listings and bookings, plus the
// revenue sum over paid bookings.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	var stats DashboardStats

	if err := db.Model(&userModel.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&accommodationModel.Accommodation{}).Count(&stats.TotalAccommodations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&accommodationModel.Accommodation{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveAccommodations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&bookingModel.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&bookingModel.Booking{}).
		Where("status = ?", bookingModel.BookingStatusPaid).
		Count(&stats.PaidBookings).Error; err != nil {
		return nil, err
	}

	var revenue *float64
	if err := db.Model(&bookingModel.Booking{}).
		Where("status = ?", bookingModel.BookingStatusPaid).
		Select("SUM(total_price)").
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	return &stats, nil
}
