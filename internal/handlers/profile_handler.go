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

// ProfileGet возвращает профиль текущего пользователя.
// В ответе также отметка времени предыдущего посещения этой страницы.
func ProfileGet(db *gorm.DB, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var user models.User
		if err := db.Preload("Profile").First(&user, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении профиля"})
			return
		}

		response := models.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			CreatedAt: user.CreatedAt,
		}
		if user.Profile != nil {
			response.Phone = user.Profile.Phone
			response.AvatarUrl = user.Profile.AvatarUrl
			response.IsDriver = user.Profile.IsDriver
		}

		sessionID := sessions.EnsureSessionID(c)
		lastVisit, err := sessions.TouchVisit(c.Request.Context(), sessionID, "last_visit", time.Now())
		if err != nil {
			log.Printf("Не удалось обновить отметку посещения: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"user":       response,
			"last_visit": lastVisit,
		})
	}
}

// ProfileUpdate обновляет профиль текущего пользователя
func ProfileUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req struct {
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Email     string `json:"email"`
			Phone     string `json:"phone"`
			AvatarUrl string `json:"avatarUrl"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		var user models.User
		if err := db.Preload("Profile").First(&user, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении пользователя"})
			return
		}

		// Обновляем только разрешенные поля
		userUpdates := map[string]interface{}{}
		if req.FirstName != "" {
			userUpdates["first_name"] = req.FirstName
		}
		if req.LastName != "" {
			userUpdates["last_name"] = req.LastName
		}
		if req.Email != "" {
			userUpdates["email"] = req.Email
		}

		if len(userUpdates) > 0 {
			if err := db.Model(&user).Updates(userUpdates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении профиля"})
				return
			}
		}

		profileUpdates := map[string]interface{}{}
		if req.Phone != "" {
			profileUpdates["phone"] = req.Phone
		}
		if req.AvatarUrl != "" {
			// Убеждаемся, что URL начинается с /
			avatarUrl := req.AvatarUrl
			if avatarUrl[0] != '/' {
				avatarUrl = "/" + avatarUrl
			}
			profileUpdates["avatar_url"] = avatarUrl
		}

		if user.Profile != nil && len(profileUpdates) > 0 {
			if err := db.Model(user.Profile).Updates(profileUpdates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении профиля"})
				return
			}
		}

		// Получаем обновленные данные пользователя
		if err := db.Preload("Profile").First(&user, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении обновленных данных"})
			return
		}

		response := models.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			CreatedAt: user.CreatedAt,
		}
		if user.Profile != nil {
			response.Phone = user.Profile.Phone
			response.AvatarUrl = user.Profile.AvatarUrl
			response.IsDriver = user.Profile.IsDriver
		}

		c.JSON(http.StatusOK, response)
	}
}
