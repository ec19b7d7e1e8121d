package handlers

import (
	"errors"
	"net/http"
	"strings"

	"shareroute-backend/internal/models"
	"shareroute-backend/internal/services"
	"shareroute-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register регистрирует нового пользователя и создает профиль
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username  string `json:"username" binding:"required"`
			Email     string `json:"email" binding:"required,email"`
			Password  string `json:"password" binding:"required,min=8"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			Phone     string `json:"phone" binding:"required"`
			AvatarUrl string `json:"avatarUrl"`
			IsDriver  bool   `json:"isDriver"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		// Проверяем, что имя пользователя свободно
		var existing models.User
		if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Имя пользователя уже занято"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обработке пароля"})
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        strings.ToLower(req.Email),
			PasswordHash: string(hash),
			FirstName:    req.FirstName,
			LastName:     req.LastName,
		}

		// Пользователь и профиль создаются в одной транзакции
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			profile := models.Profile{
				UserID:    user.ID,
				Phone:     req.Phone,
				AvatarUrl: req.AvatarUrl,
				IsDriver:  req.IsDriver,
			}
			return tx.Create(&profile).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Имя пользователя уже занято"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при регистрации"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Регистрация прошла успешно",
			"user_id": user.ID,
		})
	}
}

// Login проверяет учетные данные и выдает JWT токен
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		var user models.User
		if err := db.Preload("Profile").Where("username = ?", req.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверное имя пользователя или пароль"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверное имя пользователя или пароль"})
			return
		}

		token, err := utils.GenerateJWT(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании токена"})
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

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  response,
		})
	}
}

// Logout завершает сессию клиента
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Токен живет на клиенте, серверу достаточно сбросить cookie сессии
		c.SetCookie(services.SessionCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Выход выполнен"})
	}
}
