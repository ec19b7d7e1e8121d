package handlers

import (
	"errors"
	"net/http"
	"time"

	"shareroute-backend/internal/middleware"
	"shareroute-backend/internal/models"
	"shareroute-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	errNotEnoughSeats = errors.New("недостаточно свободных мест")
	errBookingGone    = errors.New("бронирование уже отменено")
	errRideDeparted   = errors.New("поездка уже отправилась")
)

// BookingCreate бронирует места в поездке.
// Проверка и списание мест выполняются одним условным UPDATE внутри
// транзакции, поэтому два одновременных бронирования не могут вместе
// превысить вместимость поездки.
func BookingCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var ride models.Ride
		if err := db.First(&ride, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Поездка не найдена"})
			return
		}

		var req models.BookingCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		var booking models.Booking
		err := db.Transaction(func(tx *gorm.DB) error {
			// Списываем места только если их достаточно
			res := tx.Model(&models.Ride{}).
				Where("id = ? AND available_seats >= ?", ride.ID, req.Seats).
				UpdateColumn("available_seats", gorm.Expr("available_seats - ?", req.Seats))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errNotEnoughSeats
			}

			booking = models.Booking{
				UserID:      userID,
				RideID:      ride.ID,
				SeatsBooked: req.Seats,
			}
			return tx.Create(&booking).Error
		})

		if errors.Is(err, errNotEnoughSeats) {
			middleware.TrackBooking("create", "rejected")
			c.JSON(http.StatusConflict, gin.H{"error": "Недостаточно свободных мест"})
			return
		}
		if err != nil {
			middleware.TrackBooking("create", "error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании бронирования"})
			return
		}

		middleware.TrackBooking("create", "ok")

		c.JSON(http.StatusCreated, models.BookingResponse{
			ID:          booking.ID,
			RideID:      booking.RideID,
			UserID:      booking.UserID,
			SeatsBooked: booking.SeatsBooked,
			BookingTime: booking.BookingTime,
			TotalCost:   float64(booking.SeatsBooked) * ride.Rate,
		})
	}
}

// BookingCancel отменяет бронирование и возвращает места в поездку.
// После отправления поездки отмена запрещена.
func BookingCancel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var booking models.Booking
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&booking).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Бронирование не найдено"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			// Сначала снимаем бронирование: повторная отмена увидит
			// ноль затронутых строк и не вернет места второй раз
			res := tx.Where("id = ? AND user_id = ?", booking.ID, userID).Delete(&models.Booking{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errBookingGone
			}

			// Места возвращаются только пока поездка не отправилась,
			// иначе транзакция откатывается и бронирование остается
			res = tx.Model(&models.Ride{}).
				Where("id = ? AND departure_time > ?", booking.RideID, time.Now()).
				UpdateColumn("available_seats", gorm.Expr("available_seats + ?", booking.SeatsBooked))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errRideDeparted
			}
			return nil
		})

		switch {
		case errors.Is(err, errBookingGone):
			middleware.TrackBooking("cancel", "rejected")
			c.JSON(http.StatusNotFound, gin.H{"error": "Бронирование не найдено"})
		case errors.Is(err, errRideDeparted):
			middleware.TrackBooking("cancel", "rejected")
			c.JSON(http.StatusConflict, gin.H{"error": "Нельзя отменить бронирование после отправления"})
		case err != nil:
			middleware.TrackBooking("cancel", "error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при отмене бронирования"})
		default:
			middleware.TrackBooking("cancel", "ok")
			c.JSON(http.StatusOK, gin.H{"message": "Бронирование отменено"})
		}
	}
}

// BookingHistory возвращает бронирования текущего пользователя
// и обновляет отметку последнего визита на эту страницу
func BookingHistory(db *gorm.DB, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		now := time.Now()

		var bookings []models.Booking
		if err := db.Preload("Ride").Preload("Ride.Vehicle").
			Where("user_id = ?", userID).Order("booking_time DESC").
			Find(&bookings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении бронирований"})
			return
		}

		responses := make([]models.BookingResponse, 0, len(bookings))
		for i := range bookings {
			b := &bookings[i]
			responses = append(responses, models.BookingResponse{
				ID:          b.ID,
				RideID:      b.RideID,
				UserID:      b.UserID,
				SeatsBooked: b.SeatsBooked,
				BookingTime: b.BookingTime,
				TotalCost:   float64(b.SeatsBooked) * b.Ride.Rate,
				RideInfo:    b.Ride.ToResponse(now),
			})
		}

		sessionID := sessions.EnsureSessionID(c)
		lastVisit, _ := sessions.TouchVisit(c.Request.Context(), sessionID, "last_history", now)

		c.SetCookie("last_history_visit", now.Format("2006-01-02 15:04:05"), searchCookieMaxAge, "/", "", false, false)

		c.JSON(http.StatusOK, gin.H{
			"bookings":   responses,
			"last_visit": lastVisit,
		})
	}
}
