package handlers

import (
	"log"
	"net/http"
	"time"

	"shareroute-backend/internal/models"
	"shareroute-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DriverDashboard возвращает автомобили и поездки текущего водителя
func DriverDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetUint("profile_id")
		now := time.Now()

		var vehicles []models.Vehicle
		if err := db.Where("profile_id = ?", profileID).Order("created_at ASC").Find(&vehicles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении автомобилей"})
			return
		}

		var rides []models.Ride
		if err := db.Preload("Vehicle").Where("driver_id = ?", profileID).
			Order("departure_time ASC").Find(&rides).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении поездок"})
			return
		}

		vehicleResponses := make([]models.VehicleResponse, 0, len(vehicles))
		for i := range vehicles {
			vehicleResponses = append(vehicleResponses, vehicles[i].ToResponse())
		}

		rideResponses := make([]models.RideResponse, 0, len(rides))
		for i := range rides {
			rideResponses = append(rideResponses, rides[i].ToResponse(now))
		}

		c.JSON(http.StatusOK, gin.H{
			"vehicles": vehicleResponses,
			"rides":    rideResponses,
		})
	}
}

// RideCreate публикует новую поездку водителя
func RideCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetUint("profile_id")

		var req models.RideCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		// Поездку можно создать только на собственном автомобиле
		var vehicle models.Vehicle
		if err := db.Where("id = ? AND profile_id = ?", req.VehicleID, profileID).First(&vehicle).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Автомобиль не найден"})
			return
		}

		ride := models.Ride{
			VehicleID:      vehicle.ID,
			DriverID:       profileID,
			Origin:         req.Origin,
			Destination:    req.Destination,
			DepartureTime:  req.DepartureTime,
			SeatsTotal:     req.Seats,
			AvailableSeats: req.Seats,
			DistanceKm:     req.DistanceKm,
			// Экономия CO2 фиксируется при создании и больше не пересчитывается
			CO2Saved: models.ComputeCO2(req.DistanceKm),
			Rate:     req.Rate,
		}

		if err := db.Create(&ride).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании поездки"})
			return
		}

		ride.Vehicle = vehicle
		c.JSON(http.StatusCreated, ride.ToResponse(time.Now()))
	}
}

// RideUpdate редактирует поездку владельца. Состоявшуюся поездку
// изменить нельзя, состояние остается прежним.
func RideUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetUint("profile_id")
		now := time.Now()

		var ride models.Ride
		if err := db.Where("id = ? AND driver_id = ?", c.Param("id"), profileID).First(&ride).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Поездка не найдена"})
			return
		}

		if ride.HasDeparted(now) {
			c.JSON(http.StatusConflict, gin.H{"error": "Поездка уже состоялась"})
			return
		}

		var req struct {
			VehicleID     uint       `json:"vehicleId"`
			Origin        string     `json:"origin"`
			Destination   string     `json:"destination"`
			DepartureTime *time.Time `json:"departureTime"`
			DistanceKm    *float64   `json:"distanceKm"`
			Rate          *float64   `json:"rate"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		updates := map[string]interface{}{}
		if req.VehicleID != 0 && req.VehicleID != ride.VehicleID {
			var vehicle models.Vehicle
			if err := db.Where("id = ? AND profile_id = ?", req.VehicleID, profileID).First(&vehicle).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Автомобиль не найден"})
				return
			}
			updates["vehicle_id"] = req.VehicleID
		}
		if req.Origin != "" {
			updates["origin"] = req.Origin
		}
		if req.Destination != "" {
			updates["destination"] = req.Destination
		}
		if req.DepartureTime != nil {
			updates["departure_time"] = *req.DepartureTime
		}
		if req.DistanceKm != nil {
			// Дистанцию можно поменять, но co2_saved остается снимком на момент создания
			updates["distance_km"] = *req.DistanceKm
		}
		if req.Rate != nil {
			updates["rate"] = *req.Rate
		}

		if len(updates) > 0 {
			if err := db.Model(&ride).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении поездки"})
				return
			}
		}

		if err := db.Preload("Vehicle").First(&ride, ride.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении обновленных данных"})
			return
		}

		c.JSON(http.StatusOK, ride.ToResponse(now))
	}
}

// RideDelete удаляет поездку владельца вместе с бронированиями.
// Состоявшуюся поездку удалить нельзя.
func RideDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetUint("profile_id")

		var ride models.Ride
		if err := db.Where("id = ? AND driver_id = ?", c.Param("id"), profileID).First(&ride).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Поездка не найдена"})
			return
		}

		if ride.HasDeparted(time.Now()) {
			c.JSON(http.StatusConflict, gin.H{"error": "Поездка уже состоялась"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("ride_id = ?", ride.ID).Delete(&models.Booking{}).Error; err != nil {
				return err
			}
			return tx.Delete(&ride).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении поездки"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Поездка удалена"})
	}
}

// RideDetail возвращает карточку поездки и записывает просмотр
// в список недавно просмотренных текущей сессии
func RideDetail(db *gorm.DB, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ride models.Ride
		if err := db.Preload("Vehicle").Preload("Driver").Preload("Driver.User").
			First(&ride, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Поездка не найдена"})
			return
		}

		sessionID := sessions.EnsureSessionID(c)
		if err := sessions.PushRecentRide(c.Request.Context(), sessionID, ride.ID); err != nil {
			log.Printf("Не удалось записать просмотр поездки %d: %v", ride.ID, err)
		}

		c.JSON(http.StatusOK, ride.ToResponse(time.Now()))
	}
}

// DriverRides возвращает все поездки указанного водителя,
// сначала самые поздние по времени отправления
func DriverRides(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Profile
		if err := db.Preload("User").First(&driver, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Водитель не найден"})
			return
		}

		var rides []models.Ride
		if err := db.Preload("Vehicle").Where("driver_id = ?", driver.ID).
			Order("departure_time DESC").Find(&rides).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении поездок"})
			return
		}

		now := time.Now()
		responses := make([]models.RideResponse, 0, len(rides))
		for i := range rides {
			responses = append(responses, rides[i].ToResponse(now))
		}

		c.JSON(http.StatusOK, gin.H{
			"driver": gin.H{
				"id":        driver.ID,
				"name":      driver.User.FirstName + " " + driver.User.LastName,
				"avatarUrl": driver.AvatarUrl,
			},
			"rides": responses,
		})
	}
}

// RideBookings возвращает бронирования собственной поездки водителя
// с суммой к оплате по каждому бронированию
func RideBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetUint("profile_id")

		var ride models.Ride
		if err := db.Where("id = ? AND driver_id = ?", c.Param("id"), profileID).First(&ride).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Поездка не найдена"})
			return
		}

		var bookings []models.Booking
		if err := db.Preload("User").Preload("User.Profile").
			Where("ride_id = ?", ride.ID).Order("booking_time ASC").Find(&bookings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении бронирований"})
			return
		}

		type rideBooking struct {
			ID             uint      `json:"id"`
			SeatsBooked    int       `json:"seatsBooked"`
			BookingTime    time.Time `json:"bookingTime"`
			TotalCost      float64   `json:"totalCost"`
			PassengerName  string    `json:"passengerName"`
			PassengerPhone string    `json:"passengerPhone"`
		}

		responses := make([]rideBooking, 0, len(bookings))
		for i := range bookings {
			b := &bookings[i]
			resp := rideBooking{
				ID:            b.ID,
				SeatsBooked:   b.SeatsBooked,
				BookingTime:   b.BookingTime,
				TotalCost:     float64(b.SeatsBooked) * ride.Rate,
				PassengerName: b.User.FirstName + " " + b.User.LastName,
			}
			if b.User.Profile != nil {
				resp.PassengerPhone = b.User.Profile.Phone
			}
			responses = append(responses, resp)
		}

		c.JSON(http.StatusOK, gin.H{
			"ride":     ride.ToResponse(time.Now()),
			"bookings": responses,
		})
	}
}
