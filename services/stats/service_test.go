package stats

import (
	"context"
	"testing"

	"campusstay/database"
	accommodationModel "campusstay/models/accommodation"
	bookingModel "campusstay/models/booking"
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

func TestDashboardEmpty(t *testing.T) {
	svc, _ := setupTest(t)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalBookings)
	assert.Zero(t, stats.TotalRevenue)
}

func TestDashboardAggregates(t *testing.T) {
	svc, db := setupTest(t)

	u := userModel.User{
		FullName:      "Ayanda Zulu",
		Email:         "ayanda@example.com",
		StudentNumber: "20240005",
		IDNumber:      "9502025800089",
		Phone:         "0731112222",
	}
	require.NoError(t, db.Create(&u).Error)

	active := accommodationModel.Accommodation{
		Title: "A", Location: "CT", RoomType: "single", PricePerMonth: 1000, Capacity: 2, IsActive: true,
	}
	inactive := accommodationModel.Accommodation{
		Title: "B", Location: "CT", RoomType: "single", PricePerMonth: 900, Capacity: 1, IsActive: false,
	}
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&inactive).Error)

	paid := bookingModel.Booking{
		UserID: u.ID, AccommodationID: active.ID,
		Duration: bookingModel.DurationSemester, Months: 5,
		TotalPrice: 5000, Status: bookingModel.BookingStatusPaid,
	}
	cancelled := bookingModel.Booking{
		UserID: u.ID, AccommodationID: active.ID,
		Duration: bookingModel.DurationAnnual, Months: 10,
		TotalPrice: 10000, Status: bookingModel.BookingStatusCancelled,
	}
	require.NoError(t, db.Create(&paid).Error)
	require.NoError(t, db.Create(&cancelled).Error)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.TotalAccommodations)
	assert.EqualValues(t, 1, stats.ActiveAccommodations)
	assert.EqualValues(t, 2, stats.TotalBookings)
	assert.EqualValues(t, 1, stats.PaidBookings)
	assert.Equal(t, 5000.0, stats.TotalRevenue, "revenue counts paid bookings only")
}
