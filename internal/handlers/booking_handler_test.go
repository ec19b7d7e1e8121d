package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shareroute-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB открывает отдельную базу в памяти для одного теста
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Vehicle{},
		&models.Ride{},
		&models.Booking{},
	))
	return testDB
}

// newBookingRouter собирает роутер бронирований с подставленным пользователем
func newBookingRouter(testDB *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/rides/:id/book", BookingCreate(testDB))
	r.DELETE("/bookings/:id", BookingCancel(testDB))
	return r
}

// seedRide создает водителя с автомобилем и поездку с указанными местами
func seedRide(t *testing.T, testDB *gorm.DB, seats int, departure time.Time) models.Ride {
	t.Helper()

	driver := models.User{
		Username:     "driver-" + t.Name(),
		Email:        "driver@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, testDB.Create(&driver).Error)

	profile := models.Profile{UserID: driver.ID, Phone: "+77001234567", IsDriver: true}
	require.NoError(t, testDB.Create(&profile).Error)

	vehicle := models.Vehicle{
		ProfileID:    profile.ID,
		Name:         "Toyota Camry",
		LicensePlate: "KZ-" + t.Name(),
	}
	require.NoError(t, testDB.Create(&vehicle).Error)

	ride := models.Ride{
		VehicleID:      vehicle.ID,
		DriverID:       profile.ID,
		Origin:         "Алматы",
		Destination:    "Астана",
		DepartureTime:  departure,
		SeatsTotal:     seats,
		AvailableSeats: seats,
		DistanceKm:     1200,
		CO2Saved:       models.ComputeCO2(1200),
		Rate:           1500,
	}
	require.NoError(t, testDB.Create(&ride).Error)
	return ride
}

func bookSeats(r *gin.Engine, rideID uint, seats int) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	body := bytes.NewBufferString(fmt.Sprintf(`{"seats":%d}`, seats))
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/rides/%d/book", rideID), body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func cancelBooking(r *gin.Engine, bookingID uint) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/bookings/%d", bookingID), nil)
	r.ServeHTTP(w, req)
	return w
}

func availableSeats(t *testing.T, testDB *gorm.DB, rideID uint) int {
	t.Helper()
	var ride models.Ride
	require.NoError(t, testDB.First(&ride, rideID).Error)
	return ride.AvailableSeats
}

func TestBookingOverbookRejected(t *testing.T) {
	testDB := newTestDB(t)
	ride := seedRide(t, testDB, 3, time.Now().Add(24*time.Hour))
	r := newBookingRouter(testDB, 100)

	w := bookSeats(r, ride.ID, 5)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Бронирование не создано, места не изменились
	var count int64
	require.NoError(t, testDB.Model(&models.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, 3, availableSeats(t, testDB, ride.ID))
}

func TestBookingZeroSeatsRejected(t *testing.T) {
	testDB := newTestDB(t)
	ride := seedRide(t, testDB, 3, time.Now().Add(24*time.Hour))
	r := newBookingRouter(testDB, 100)

	w := bookSeats(r, ride.ID, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 3, availableSeats(t, testDB, ride.ID))
}

func TestBookingCancelRoundTrip(t *testing.T) {
	testDB := newTestDB(t)
	ride := seedRide(t, testDB, 4, time.Now().Add(24*time.Hour))
	r := newBookingRouter(testDB, 100)

	w := bookSeats(r, ride.ID, 2)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, availableSeats(t, testDB, ride.ID))

	var booking models.Booking
	require.NoError(t, testDB.Where("ride_id = ?", ride.ID).First(&booking).Error)

	// Отмена возвращает места
	w = cancelBooking(r, booking.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, availableSeats(t, testDB, ride.ID))

	// Повторное бронирование того же количества дает прежний остаток
	w = bookSeats(r, ride.ID, 2)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, availableSeats(t, testDB, ride.ID))
}

func TestBookingCancelTwiceRestoresOnce(t *testing.T) {
	testDB := newTestDB(t)
	ride := seedRide(t, testDB, 4, time.Now().Add(24*time.Hour))
	r := newBookingRouter(testDB, 100)

	w := bookSeats(r, ride.ID, 2)
	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, testDB.Where("ride_id = ?", ride.ID).First(&booking).Error)

	w = cancelBooking(r, booking.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, availableSeats(t, testDB, ride.ID))

	// Вторая отмена того же бронирования не возвращает места еще раз
	w = cancelBooking(r, booking.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 4, availableSeats(t, testDB, ride.ID))
}

func TestBookingCancelAfterDeparture(t *testing.T) {
	testDB := newTestDB(t)
	ride := seedRide(t, testDB, 4, time.Now().Add(-time.Hour))
	r := newBookingRouter(testDB, 100)

	booking := models.Booking{UserID: 100, RideID: ride.ID, SeatsBooked: 1}
	require.NoError(t, testDB.Create(&booking).Error)
	require.NoError(t, testDB.Model(&models.Ride{}).Where("id = ?", ride.ID).
		UpdateColumn("available_seats", 3).Error)

	w := cancelBooking(r, booking.ID)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Бронирование сохранилось, места не вернулись
	var kept models.Booking
	assert.NoError(t, testDB.First(&kept, booking.ID).Error)
	assert.Equal(t, 3, availableSeats(t, testDB, ride.ID))
}
