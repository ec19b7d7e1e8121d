package middleware

import (
	"net/http"

	"shareroute-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Capability - уровень доступа пользователя к функциям водителя
type Capability string

const (
	CapabilityDriver  Capability = "driver"  // Профиль с флагом водителя
	CapabilityRider   Capability = "rider"   // Обычный пассажир
	CapabilityUnknown Capability = "unknown" // Профиль не найден
)

// LookupCapability определяет уровень доступа пользователя.
// Отсутствующий профиль дает unknown, что эквивалентно минимальным правам.
func LookupCapability(db *gorm.DB, userID uint) (Capability, *models.Profile) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return CapabilityUnknown, nil
	}

	if profile.IsDriver {
		return CapabilityDriver, &profile
	}
	return CapabilityRider, &profile
}

// DriverOnly пропускает только пользователей с профилем водителя.
// Любой отказ - редирект на главную страницу без деталей.
func DriverOnly(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		capability, profile := LookupCapability(db, userID)
		if capability != CapabilityDriver {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}

		// Сохраняем профиль водителя для обработчиков
		c.Set("profile_id", profile.ID)
		c.Next()
	}
}
