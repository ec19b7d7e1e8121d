package handlers

import (
	"errors"
	"net/http"
	"time"

	"shareroute-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VehicleCreate добавляет автомобиль водителю
func VehicleCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetUint("profile_id")

		var req models.VehicleCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		vehicle := models.Vehicle{
			ProfileID:    profileID,
			Name:         req.Name,
			LicensePlate: req.LicensePlate,
			IsElectric:   req.IsElectric,
			DocumentUrl:  req.DocumentUrl,
			ImageUrl:     req.ImageUrl,
		}

		if err := db.Create(&vehicle).Error; err != nil {
			// Уникальность номера контролирует ограничение в базе,
			// конфликт при одновременной регистрации тоже попадает сюда
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Автомобиль с таким номером уже зарегистрирован"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании автомобиля"})
			return
		}

		c.JSON(http.StatusCreated, vehicle.ToResponse())
	}
}

// VehicleUpdate обновляет автомобиль владельца
func VehicleUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetUint("profile_id")

		var vehicle models.Vehicle
		if err := db.Where("id = ? AND profile_id = ?", c.Param("id"), profileID).First(&vehicle).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Автомобиль не найден"})
			return
		}

		var req struct {
			Name         string `json:"name"`
			LicensePlate string `json:"licensePlate"`
			IsElectric   *bool  `json:"isElectric"`
			DocumentUrl  string `json:"documentUrl"`
			ImageUrl     string `json:"imageUrl"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		// Обновляем только переданные поля
		updates := map[string]interface{}{}
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.LicensePlate != "" {
			updates["license_plate"] = req.LicensePlate
		}
		if req.IsElectric != nil {
			updates["is_electric"] = *req.IsElectric
		}
		if req.DocumentUrl != "" {
			updates["document_url"] = req.DocumentUrl
		}
		if req.ImageUrl != "" {
			updates["image_url"] = req.ImageUrl
		}

		if len(updates) > 0 {
			if err := db.Model(&vehicle).Updates(updates).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Автомобиль с таким номером уже зарегистрирован"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении автомобиля"})
				return
			}
		}

		c.JSON(http.StatusOK, vehicle.ToResponse())
	}
}

// VehicleDelete удаляет автомобиль вместе с будущими поездками и их
// бронированиями. Автомобиль с уже состоявшимися поездками удалить нельзя:
// история поездок должна сохраниться.
func VehicleDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetUint("profile_id")

		var vehicle models.Vehicle
		if err := db.Where("id = ? AND profile_id = ?", c.Param("id"), profileID).First(&vehicle).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Автомобиль не найден"})
			return
		}

		var departedCount int64
		if err := db.Model(&models.Ride{}).
			Where("vehicle_id = ? AND departure_time <= ?", vehicle.ID, time.Now()).
			Count(&departedCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при проверке поездок"})
			return
		}

		if departedCount > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Нельзя удалить автомобиль с состоявшимися поездками"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var rideIDs []uint
			if err := tx.Model(&models.Ride{}).Where("vehicle_id = ?", vehicle.ID).
				Pluck("id", &rideIDs).Error; err != nil {
				return err
			}

			if len(rideIDs) > 0 {
				if err := tx.Where("ride_id IN (?)", rideIDs).Delete(&models.Booking{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN (?)", rideIDs).Delete(&models.Ride{}).Error; err != nil {
					return err
				}
			}

			return tx.Delete(&vehicle).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении автомобиля"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Автомобиль удален"})
	}
}
