package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"shareroute-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ContactSend отправляет сообщение с формы обратной связи.
// Доставка без подтверждения: пользователь получает успех в любом случае.
func ContactSend(mail *services.MailService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name    string `json:"name" binding:"required"`
			Email   string `json:"email" binding:"required,email"`
			Message string `json:"message" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат данных"})
			return
		}

		subject := fmt.Sprintf("Contact Form: %s", req.Name)
		body := fmt.Sprintf("From: %s\nEmail: %s\n\nMessage:\n%s", req.Name, req.Email, req.Message)

		recipient := os.Getenv("CONTACT_EMAIL")
		if recipient == "" {
			recipient = os.Getenv("SMTP_FROM")
		}

		if err := mail.Send(subject, body, []string{recipient}); err != nil {
			log.Printf("Не удалось отправить письмо с формы обратной связи: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Сообщение отправлено"})
	}
}
