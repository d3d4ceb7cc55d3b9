package booking

import (
	"context"
	"testing"

	"campusstay/database"
	"campusstay/httpServices/payment"
	accommodationModel "campusstay/models/accommodation"
	bookingModel "campusstay/models/booking"
	userModel "campusstay/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*Service, *payment.MockProvider, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect database")
	require.NoError(t, database.Migrate(db))

	provider := payment.NewMockProvider()
	svc := NewService(db, provider, "zar",
		"http://localhost:3000/payment/success",
		"http://localhost:3000/payment/cancel")
	return svc, provider, db
}

func createUser(t *testing.T, db *gorm.DB) userModel.User {
	t.Helper()
	u := userModel.User{
		FullName:      "Thandi Nkosi",
		Email:         "thandi@example.com",
		StudentNumber: "20240001",
		IDNumber:      "9901015800087",
		Phone:         "0821234567",
	}
	require.NoError(t, u.SetPassword("secret-password"))
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createAccommodation(t *testing.T, db *gorm.DB, pricePerMonth float64, capacity int) accommodationModel.Accommodation {
	t.Helper()
	acc := accommodationModel.Accommodation{
		Title:         "Res on Main",
		Location:      "Cape Town",
		RoomType:      "single",
		PricePerMonth: pricePerMonth,
		Capacity:      capacity,
		Amenities:     accommodationModel.StringSlice{"wifi", "laundry"},
		IsActive:      true,
	}
	require.NoError(t, db.Create(&acc).Error)
	return acc
}

func TestCreateSemesterBooking(t *testing.T) {
	svc, _, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 1)

	b, session, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	require.NoError(t, err)

	assert.Equal(t, 5, b.Months)
	assert.Equal(t, 5000.0, b.TotalPrice)
	assert.Equal(t, bookingModel.BookingStatusApproved, b.Status)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.RedirectURL)

	var stored bookingModel.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	require.NotNil(t, stored.CheckoutSessionID)
	assert.Equal(t, session.ID, *stored.CheckoutSessionID)
	assert.True(t, stored.MoveOutDate.After(stored.MoveInDate))
}

func TestCreateAnnualBooking(t *testing.T) {
	svc, _, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1200, 2)

	b, _, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationAnnual)
	require.NoError(t, err)

	assert.Equal(t, 10, b.Months)
	assert.Equal(t, 12000.0, b.TotalPrice)
}

func TestCreateBookingAccommodationMissing(t *testing.T) {
	svc, _, db := setupTest(t)
	u := createUser(t, db)

	_, _, err := svc.Create(context.Background(), u.ID, 999, bookingModel.DurationSemester)
	assert.ErrorIs(t, err, ErrAccommodationNotFound)
}

func TestCreateBookingInactiveAccommodation(t *testing.T) {
	svc, _, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 1)
	require.NoError(t, db.Model(&acc).Update("is_active", false).Error)

	_, _, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	assert.ErrorIs(t, err, ErrAccommodationNotFound)
}

func TestCreateBookingFullAccommodation(t *testing.T) {
	svc, _, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 1)
	require.NoError(t, db.Model(&acc).Update("current_occupancy", 1).Error)

	_, _, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	assert.ErrorIs(t, err, ErrAccommodationFull)
}

func TestCreateBookingBelowMinimumCharge(t *testing.T) {
	svc, _, db := setupTest(t)
	u := createUser(t, db)
	// 0.08 * 5 months = 0.40, below the R0.50 minimum
	acc := createAccommodation(t, db, 0.08, 1)

	_, _, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	assert.ErrorIs(t, err, ErrAmountBelowMinimum)

	var count int64
	require.NoError(t, db.Model(&bookingModel.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateBookingProviderFailureRollsBack(t *testing.T) {
	svc, provider, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 1)

	provider.FailCreate = true
	_, _, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	assert.ErrorIs(t, err, ErrProvider)

	// The tentative booking must not survive the provider failure.
	var count int64
	require.NoError(t, db.Model(&bookingModel.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConfirmPayment(t *testing.T) {
	svc, provider, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 1)

	b, session, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	require.NoError(t, err)

	provider.CompletePayment(session.ID)

	confirmed, err := svc.ConfirmPayment(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, confirmed.ID)
	assert.Equal(t, bookingModel.BookingStatusPaid, confirmed.Status)

	var updatedAcc accommodationModel.Accommodation
	require.NoError(t, db.First(&updatedAcc, acc.ID).Error)
	assert.Equal(t, 1, updatedAcc.CurrentOccupancy)
	assert.False(t, updatedAcc.IsActive, "listing should deactivate once full")
}

func TestConfirmPaymentLeavesSpareCapacityActive(t *testing.T) {
	svc, provider, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 3)

	_, session, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	require.NoError(t, err)
	provider.CompletePayment(session.ID)

	_, err = svc.ConfirmPayment(context.Background(), session.ID)
	require.NoError(t, err)

	var updatedAcc accommodationModel.Accommodation
	require.NoError(t, db.First(&updatedAcc, acc.ID).Error)
	assert.Equal(t, 1, updatedAcc.CurrentOccupancy)
	assert.True(t, updatedAcc.IsActive)
}

func TestConfirmPaymentReplayIsIdempotent(t *testing.T) {
	svc, provider, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 2)

	_, session, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	require.NoError(t, err)
	provider.CompletePayment(session.ID)

	_, err = svc.ConfirmPayment(context.Background(), session.ID)
	require.NoError(t, err)

	// Replayed confirmation is a no-op.
	_, err = svc.ConfirmPayment(context.Background(), session.ID)
	require.NoError(t, err)

	var updatedAcc accommodationModel.Accommodation
	require.NoError(t, db.First(&updatedAcc, acc.ID).Error)
	assert.Equal(t, 1, updatedAcc.CurrentOccupancy, "occupancy must increment at most once per session")
}

func TestConfirmPaymentIncompletePayment(t *testing.T) {
	svc, _, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 1)

	_, session, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrPaymentNotCompleted)

	var updatedAcc accommodationModel.Accommodation
	require.NoError(t, db.First(&updatedAcc, acc.ID).Error)
	assert.Zero(t, updatedAcc.CurrentOccupancy)
}

func TestConfirmPaymentUnknownSession(t *testing.T) {
	svc, provider, _ := setupTest(t)

	provider.CompletePayment("cs_mock_orphan")
	_, err := svc.ConfirmPayment(context.Background(), "cs_mock_orphan")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirmPaymentProviderReadFailure(t *testing.T) {
	svc, provider, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 1)

	_, session, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	require.NoError(t, err)
	provider.CompletePayment(session.ID)
	provider.FailRead = true

	_, err = svc.ConfirmPayment(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestConfirmPaymentNeverOverfills(t *testing.T) {
	svc, provider, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 1)

	// Two approved bookings race for the last spot.
	_, first, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	require.NoError(t, err)
	_, second, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	require.NoError(t, err)

	provider.CompletePayment(first.ID)
	provider.CompletePayment(second.ID)

	_, err = svc.ConfirmPayment(context.Background(), first.ID)
	require.NoError(t, err)
	_, err = svc.ConfirmPayment(context.Background(), second.ID)
	assert.Error(t, err, "second confirmation cannot fill an already-full listing")

	var updatedAcc accommodationModel.Accommodation
	require.NoError(t, db.First(&updatedAcc, acc.ID).Error)
	assert.Equal(t, 1, updatedAcc.CurrentOccupancy)
	assert.LessOrEqual(t, updatedAcc.CurrentOccupancy, updatedAcc.Capacity)
}

func TestCancelBooking(t *testing.T) {
	svc, _, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 1)

	b, _, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusCancelled, cancelled.Status)

	// Cancelling again is a no-op.
	cancelled, err = svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusCancelled, cancelled.Status)
}

func TestCancelPaidBookingIsNoOp(t *testing.T) {
	svc, provider, db := setupTest(t)
	u := createUser(t, db)
	acc := createAccommodation(t, db, 1000, 1)

	b, session, err := svc.Create(context.Background(), u.ID, acc.ID, bookingModel.DurationSemester)
	require.NoError(t, err)
	provider.CompletePayment(session.ID)
	_, err = svc.ConfirmPayment(context.Background(), session.ID)
	require.NoError(t, err)

	got, err := svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.BookingStatusPaid, got.Status)

	var stored bookingModel.Booking
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Equal(t, bookingModel.BookingStatusPaid, stored.Status)
}

func TestCancelMissingBooking(t *testing.T) {
	svc, _, _ := setupTest(t)

	_, err := svc.Cancel(context.Background(), 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
