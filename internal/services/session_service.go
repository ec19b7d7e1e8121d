package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	// SessionCookieName - имя cookie с идентификатором сессии
	SessionCookieName = "session_id"

	// MaxRecentRides - сколько недавно просмотренных поездок храним в сессии
	MaxRecentRides = 4

	sessionTTL = 7 * 24 * time.Hour
)

// SessionService хранит состояние сессии в Redis: список недавно
// просмотренных поездок и отметки времени последних посещений.
type SessionService struct {
	redisClient *redis.Client
}

func NewSessionService(client *redis.Client) *SessionService {
	return &SessionService{redisClient: client}
}

// EnsureSessionID возвращает идентификатор сессии из cookie,
// при первом обращении выдает новый
func (s *SessionService) EnsureSessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookieName); err == nil && id != "" {
		return id
	}

	id := uuid.New().String()
	c.SetCookie(SessionCookieName, id, int(sessionTTL.Seconds()), "/", "", false, true)
	return id
}

func recentKey(sessionID string) string {
	return fmt.Sprintf("session:%s:recent", sessionID)
}

func visitKey(sessionID, name string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, name)
}

// pushRecent ставит id в начало списка, убирая прежнее вхождение
// и обрезая список до limit элементов
func pushRecent(ids []uint, id uint, limit int) []uint {
	result := make([]uint, 0, len(ids)+1)
	result = append(result, id)
	for _, v := range ids {
		if v != id {
			result = append(result, v)
		}
	}

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// PushRecentRide записывает просмотр поездки в сессию
func (s *SessionService) PushRecentRide(ctx context.Context, sessionID string, rideID uint) error {
	if s.redisClient == nil {
		return nil
	}

	ids, err := s.RecentRides(ctx, sessionID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(pushRecent(ids, rideID, MaxRecentRides))
	if err != nil {
		return err
	}

	return s.redisClient.Set(ctx, recentKey(sessionID), data, sessionTTL).Err()
}

// RecentRides возвращает идентификаторы недавно просмотренных поездок,
// от самой свежей к самой старой
func (s *SessionService) RecentRides(ctx context.Context, sessionID string) ([]uint, error) {
	if s.redisClient == nil {
		return nil, nil
	}

	data, err := s.redisClient.Get(ctx, recentKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []uint
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		// Испорченное значение просто сбрасываем
		return nil, nil
	}
	return ids, nil
}

// TouchVisit сохраняет отметку времени посещения и возвращает предыдущую.
// Пустая строка означает первое посещение.
func (s *SessionService) TouchVisit(ctx context.Context, sessionID, name string, now time.Time) (string, error) {
	if s.redisClient == nil {
		return "", nil
	}

	key := visitKey(sessionID, name)

	previous, err := s.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		previous = ""
	} else if err != nil {
		return "", err
	}

	if err := s.redisClient.Set(ctx, key, now.Format(time.RFC3339), sessionTTL).Err(); err != nil {
		return "", err
	}

	return previous, nil
}
