package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareroute-backend/internal/models"
	"shareroute-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PageSize - фиксированный размер страницы списка поездок
const PageSize = 6

const searchCookieMaxAge = 30 * 24 * 60 * 60

// parseSearchDate разбирает дату фильтра YYYY-MM-DD.
// Некорректная дата не ошибка: фильтр просто игнорируется.
func parseSearchDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	date, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// clampPage приводит номер страницы к допустимому диапазону
func clampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// totalPages считает количество страниц при фиксированном размере
func totalPages(total int64, pageSize int) int {
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// RideSearch возвращает предстоящие поездки по фильтрам поиска.
// Использованные фильтры запоминаются в cookies для подстановки
// при следующем визите.
func RideSearch(db *gorm.DB, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Query("origin")
		destination := c.Query("destination")
		dateValue := c.Query("date")
		evOnly := c.Query("ev_only")

		searchPerformed := origin != "" || destination != "" || dateValue != "" || evOnly != ""

		now := time.Now()
		query := db.Model(&models.Ride{}).Where("rides.departure_time >= ?", now)

		// Подстрочный поиск без учета регистра по адресам
		if origin != "" {
			query = query.Where("LOWER(rides.origin) LIKE ?", "%"+strings.ToLower(origin)+"%")
		}
		if destination != "" {
			query = query.Where("LOWER(rides.destination) LIKE ?", "%"+strings.ToLower(destination)+"%")
		}

		if date, ok := parseSearchDate(dateValue); ok {
			// Поездки строго в пределах выбранного календарного дня
			query = query.Where("rides.departure_time >= ? AND rides.departure_time < ?", date, date.Add(24*time.Hour))
		}

		if evOnly != "" {
			query = query.Joins("JOIN vehicles ON vehicles.id = rides.vehicle_id").
				Where("vehicles.is_electric = ?", true)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске поездок"})
			return
		}

		pages := totalPages(total, PageSize)
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		page = clampPage(page, pages)

		var rides []models.Ride
		if err := query.Preload("Vehicle").Preload("Driver").Preload("Driver.User").
			Order("rides.departure_time ASC").
			Offset((page - 1) * PageSize).Limit(PageSize).
			Find(&rides).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске поездок"})
			return
		}

		responses := make([]models.RideResponse, 0, len(rides))
		for i := range rides {
			responses = append(responses, rides[i].ToResponse(now))
		}

		// Недавно просмотренные поездки текущей сессии
		sessionID := sessions.EnsureSessionID(c)
		recentIDs, _ := sessions.RecentRides(c.Request.Context(), sessionID)
		recent := loadRecentRides(db, recentIDs, now)

		// Сохраняем cookies только если пользователь выполнял поиск
		if searchPerformed {
			evCookie := ""
			if evOnly != "" {
				evCookie = "1"
			}
			c.SetCookie("last_origin", origin, searchCookieMaxAge, "/", "", false, false)
			c.SetCookie("last_destination", destination, searchCookieMaxAge, "/", "", false, false)
			c.SetCookie("last_date", dateValue, searchCookieMaxAge, "/", "", false, false)
			c.SetCookie("last_ev_only", evCookie, searchCookieMaxAge, "/", "", false, false)
		}

		lastOrigin, _ := c.Cookie("last_origin")
		lastDestination, _ := c.Cookie("last_destination")
		lastDate, _ := c.Cookie("last_date")
		lastEvOnly, _ := c.Cookie("last_ev_only")

		c.JSON(http.StatusOK, gin.H{
			"rides":            responses,
			"total_results":    total,
			"page":             page,
			"total_pages":      pages,
			"search_performed": searchPerformed,
			"recently_viewed":  recent,
			"last_search": gin.H{
				"origin":      lastOrigin,
				"destination": lastDestination,
				"date":        lastDate,
				"ev_only":     lastEvOnly,
			},
		})
	}
}

// loadRecentRides загружает поездки по списку идентификаторов,
// сохраняя записанный порядок через порядковый номер в списке
func loadRecentRides(db *gorm.DB, ids []uint, now time.Time) []models.RideResponse {
	responses := make([]models.RideResponse, 0, len(ids))
	if len(ids) == 0 {
		return responses
	}

	orderExpr := "CASE rides.id"
	for pos, id := range ids {
		orderExpr += fmt.Sprintf(" WHEN %d THEN %d", id, pos)
	}
	orderExpr += " END"

	var rides []models.Ride
	if err := db.Preload("Vehicle").Where("id IN (?)", ids).Order(orderExpr).Find(&rides).Error; err != nil {
		return responses
	}

	for i := range rides {
		responses = append(responses, rides[i].ToResponse(now))
	}
	return responses
}
