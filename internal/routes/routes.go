package routes

import (
	"shareroute-backend/internal/handlers"
	"shareroute-backend/internal/middleware"
	"shareroute-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(api *gin.RouterGroup, db *gorm.DB, sessions *services.SessionService, mail *services.MailService) {
	// Публичные маршруты для аутентификации
	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register(db))
		auth.POST("/login", handlers.Login(db))
		auth.POST("/logout", handlers.Logout())
	}

	// Публичные маршруты: поиск, карточка поездки, обратная связь
	api.GET("/rides", handlers.RideSearch(db, sessions))
	api.GET("/rides/:id", handlers.RideDetail(db, sessions))
	api.POST("/contact", handlers.ContactSend(mail))

	// Защищенные маршруты (требуют аутентификации)
	protected := api.Group("")
	protected.Use(middleware.JWTAuth())
	{
		// Роуты для профиля
		protected.GET("/profile", handlers.ProfileGet(db, sessions))
		protected.PUT("/profile", handlers.ProfileUpdate(db))

		// Роуты для бронирований
		protected.POST("/rides/:id/book", handlers.BookingCreate(db))
		protected.GET("/bookings", handlers.BookingHistory(db, sessions))
		protected.DELETE("/bookings/:id", handlers.BookingCancel(db))

		// Публичный список поездок водителя
		protected.GET("/drivers/:id/rides", handlers.DriverRides(db))

		// Загрузка файлов
		protected.POST("/upload", handlers.UploadFile)

		// Роуты только для водителей
		driver := protected.Group("/driver")
		driver.Use(middleware.DriverOnly(db))
		{
			driver.GET("/dashboard", handlers.DriverDashboard(db))

			driver.POST("/vehicles", handlers.VehicleCreate(db))
			driver.PUT("/vehicles/:id", handlers.VehicleUpdate(db))
			driver.DELETE("/vehicles/:id", handlers.VehicleDelete(db))

			driver.POST("/rides", handlers.RideCreate(db))
			driver.PUT("/rides/:id", handlers.RideUpdate(db))
			driver.DELETE("/rides/:id", handlers.RideDelete(db))
			driver.GET("/rides/:id/bookings", handlers.RideBookings(db))
		}
	}
}
