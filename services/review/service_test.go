package review

import (
	"context"
	"testing"

	"campusstay/database"
	accommodationModel "campusstay/models/accommodation"
	bookingModel "campusstay/models/booking"
	reviewModel "campusstay/models/review"
	userModel "campusstay/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, database.Migrate(db))

	return NewService(db), db
}

func seedUserAndAccommodation(t *testing.T, db *gorm.DB) (userModel.User, accommodationModel.Accommodation) {
	t.Helper()
	u := userModel.User{
		FullName:      "Sipho Dlamini",
		Email:         "sipho@example.com",
		StudentNumber: "20240002",
		IDNumber:      "9805055800083",
		Phone:         "0837654321",
	}
	require.NoError(t, db.Create(&u).Error)

	acc := accommodationModel.Accommodation{
		Title:         "Loft 12",
		Location:      "Johannesburg",
		RoomType:      "shared",
		PricePerMonth: 800,
		Capacity:      4,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&acc).Error)
	return u, acc
}

func seedBooking(t *testing.T, db *gorm.DB, userID, accID uint, status bookingModel.BookingStatus) {
	t.Helper()
	b := bookingModel.Booking{
		UserID:          userID,
		AccommodationID: accID,
		Duration:        bookingModel.DurationSemester,
		Months:          5,
		TotalPrice:      4000,
		Status:          status,
	}
	require.NoError(t, db.Create(&b).Error)
}

func TestSubmitReview(t *testing.T) {
	svc, db := setupTest(t)
	u, acc := seedUserAndAccommodation(t, db)
	seedBooking(t, db, u.ID, acc.ID, bookingModel.BookingStatusPaid)

	r, err := svc.Submit(context.Background(), u.ID, acc.ID, 4, "Clean, close to campus")
	require.NoError(t, err)
	assert.Equal(t, 4, r.Rating)

	var count int64
	require.NoError(t, db.Model(&reviewModel.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitReviewWithoutPaidBooking(t *testing.T) {
	svc, db := setupTest(t)
	u, acc := seedUserAndAccommodation(t, db)

	_, err := svc.Submit(context.Background(), u.ID, acc.ID, 5, "Great")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestSubmitReviewApprovedBookingNotEnough(t *testing.T) {
	svc, db := setupTest(t)
	u, acc := seedUserAndAccommodation(t, db)
	seedBooking(t, db, u.ID, acc.ID, bookingModel.BookingStatusApproved)

	_, err := svc.Submit(context.Background(), u.ID, acc.ID, 5, "Great")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestSubmitReviewTwice(t *testing.T) {
	svc, db := setupTest(t)
	u, acc := seedUserAndAccommodation(t, db)
	seedBooking(t, db, u.ID, acc.ID, bookingModel.BookingStatusPaid)

	_, err := svc.Submit(context.Background(), u.ID, acc.ID, 4, "First impressions")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), u.ID, acc.ID, 2, "Changed my mind")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	var count int64
	require.NoError(t, db.Model(&reviewModel.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitReviewMissingAccommodation(t *testing.T) {
	svc, db := setupTest(t)
	u, _ := seedUserAndAccommodation(t, db)

	_, err := svc.Submit(context.Background(), u.ID, 999, 3, "Where is it")
	assert.ErrorIs(t, err, ErrAccommodationNotFound)
}

func TestAverageRating(t *testing.T) {
	svc, db := setupTest(t)
	u, acc := seedUserAndAccommodation(t, db)
	seedBooking(t, db, u.ID, acc.ID, bookingModel.BookingStatusPaid)

	other := userModel.User{
		FullName:      "Lerato Mokoena",
		Email:         "lerato@example.com",
		StudentNumber: "20240003",
		IDNumber:      "9703035800085",
		Phone:         "0719876543",
	}
	require.NoError(t, db.Create(&other).Error)
	seedBooking(t, db, other.ID, acc.ID, bookingModel.BookingStatusPaid)

	_, err := svc.Submit(context.Background(), u.ID, acc.ID, 5, "Loved it")
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), other.ID, acc.ID, 2, "Noisy")
	require.NoError(t, err)

	avg, err := svc.AverageRating(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, avg, 0.001)
}

func TestAverageRatingUnreviewed(t *testing.T) {
	svc, db := setupTest(t)
	_, acc := seedUserAndAccommodation(t, db)

	avg, err := svc.AverageRating(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)
}
