package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusstay/httpServices/payment"
	"campusstay/logger"
	accommodationModel "campusstay/models/accommodation"
	bookingModel "campusstay/models/booking"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var (
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrAccommodationFull     = errors.New("accommodation is fully booked")
	ErrAmountBelowMinimum    = errors.New("total price is below the minimum chargeable amount")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrPaymentNotCompleted   = errors.New("payment has not been completed")
	ErrProvider              = errors.New("payment provider error")
)

// Service drives the booking lifecycle: creation with a hosted checkout
// session, payment confirmation and cancellation.
type Service struct {
	db       *gorm.DB
	provider payment.Provider
	currency string

	successURL string
	cancelURL  string
}

func NewService(db *gorm.DB, provider payment.Provider, currency, successURL, cancelURL string) *Service {
	return &Service{
		db:         db,
		provider:   provider,
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// Create books a room and opens a checkout session for it. The booking row
// and the provider call share one transaction, so a provider failure rolls
// the tentative booking back.
func (s *Service) Create(ctx context.Context, userID, accommodationID uint, duration bookingModel.Duration) (*bookingModel.Booking, *payment.CheckoutSession, error) {
	var acc accommodationModel.Accommodation
	err := s.db.WithContext(ctx).First(&acc, accommodationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrAccommodationNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if !acc.IsActive {
		return nil, nil, ErrAccommodationNotFound
	}
	if acc.IsFull() {
		return nil, nil, ErrAccommodationFull
	}

	months := duration.MonthCount()
	totalPrice := acc.PricePerMonth * float64(months)
	if totalPrice < payment.MinimumChargeAmount {
		return nil, nil, ErrAmountBelowMinimum
	}

	// Tenancy runs from the start of next month.
	moveIn := now.With(time.Now()).BeginningOfMonth().AddDate(0, 1, 0)
	moveOut := moveIn.AddDate(0, months, 0)

	var b bookingModel.Booking
	var session *payment.CheckoutSession

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b = bookingModel.Booking{
			UserID:          userID,
			AccommodationID: accommodationID,
			Duration:        duration,
			Months:          months,
			TotalPrice:      totalPrice,
			Status:          bookingModel.BookingStatusApproved,
			MoveInDate:      moveIn,
			MoveOutDate:     moveOut,
		}
		if err := tx.Create(&b).Error; err != nil {
			logger.Error("Failed to create booking", err)
			return err
		}

		created, err := s.provider.CreateSession(ctx, payment.CreateSessionRequest{
			Amount:      totalPrice,
			Currency:    s.currency,
			Name:        acc.Title,
			Description: fmt.Sprintf("%s booking (%d months) - %s room", duration, months, acc.RoomType),
			SuccessURL:  s.successURL + "?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:   fmt.Sprintf("%s/%d", s.cancelURL, b.ID),
		})
		if err != nil {
			logger.Error("Failed to create checkout session", err)
			return fmt.Errorf("%w: %v", ErrProvider, err)
		}
		session = created

		if err := tx.Model(&b).Update("checkout_session_id", created.ID).Error; err != nil {
			logger.Error("Failed to store checkout session id", err)
			return err
		}
		sessionID := created.ID
		b.CheckoutSessionID = &sessionID
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Success(fmt.Sprintf("Booking %d created, checkout session %s", b.ID, session.ID))
	return &b, session, nil
}

// ConfirmPayment reconciles a checkout session with the provider and, when
// the provider reports it paid, moves the matching booking approved->paid and
// fills one spot in the accommodation. The transition is a conditional
// update, so replays of an already-confirmed session are no-ops and the
// occupancy counter is bumped at most once per booking.
func (s *Service) ConfirmPayment(ctx context.Context, sessionID string) (*bookingModel.Booking, error) {
	status, err := s.provider.GetPaymentStatus(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if status != payment.StatusPaid {
		return nil, ErrPaymentNotCompleted
	}

	var b bookingModel.Booking
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checkout_session_id = ?", sessionID).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		res := tx.Model(&bookingModel.Booking{}).
			Where("id = ? AND status = ?", b.ID, bookingModel.BookingStatusApproved).
			Update("status", bookingModel.BookingStatusPaid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already terminal; confirmation replay, leave occupancy alone.
			logger.Info(fmt.Sprintf("Booking %d already %s, ignoring confirmation for session %s", b.ID, b.Status, sessionID))
			return nil
		}
		b.Status = bookingModel.BookingStatusPaid

		res = tx.Model(&accommodationModel.Accommodation{}).
			Where("id = ? AND current_occupancy < capacity", b.AccommodationID).
			UpdateColumn("current_occupancy", gorm.Expr("current_occupancy + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("accommodation %d has no available spots for paid booking %d", b.AccommodationID, b.ID)
		}

		// Deactivate the listing once the last spot is taken.
		return tx.Model(&accommodationModel.Accommodation{}).
			Where("id = ? AND current_occupancy >= capacity", b.AccommodationID).
			Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Payment confirmed for booking %d (session %s)", b.ID, sessionID))
	return &b, nil
}

// Cancel moves an approved booking to cancelled. Bookings already in a
// terminal state are left untouched.
func (s *Service) Cancel(ctx context.Context, bookingID uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		res := tx.Model(&bookingModel.Booking{}).
			Where("id = ? AND status = ?", b.ID, bookingModel.BookingStatusApproved).
			Update("status", bookingModel.BookingStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			b.Status = bookingModel.BookingStatusCancelled
			logger.Info(fmt.Sprintf("Payment cancelled for booking %d", b.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}
