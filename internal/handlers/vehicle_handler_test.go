package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"shareroute-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVehicleRouter(testDB *gorm.DB, profileID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("profile_id", profileID)
		c.Next()
	})
	r.POST("/driver/vehicles", VehicleCreate(testDB))
	r.PUT("/driver/vehicles/:id", VehicleUpdate(testDB))
	return r
}

func seedDriverProfile(t *testing.T, testDB *gorm.DB) models.Profile {
	t.Helper()

	user := models.User{
		Username:     "driver-" + t.Name(),
		Email:        "driver@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, testDB.Create(&user).Error)

	profile := models.Profile{UserID: user.ID, Phone: "+77001234567", IsDriver: true}
	require.NoError(t, testDB.Create(&profile).Error)
	return profile
}

func TestVehicleCreateDuplicatePlate(t *testing.T) {
	testDB := newTestDB(t)
	profile := seedDriverProfile(t, testDB)
	r := newVehicleRouter(testDB, profile.ID)

	body := `{"name":"Toyota Camry","licensePlate":"123ABC02"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/driver/vehicles", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// Повторный номер отклоняется ограничением базы как ошибка валидации
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/driver/vehicles", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "номером")

	var count int64
	require.NoError(t, testDB.Model(&models.Vehicle{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestVehicleUpdateDuplicatePlate(t *testing.T) {
	testDB := newTestDB(t)
	profile := seedDriverProfile(t, testDB)
	r := newVehicleRouter(testDB, profile.ID)

	first := models.Vehicle{ProfileID: profile.ID, Name: "Camry", LicensePlate: "111AAA02"}
	second := models.Vehicle{ProfileID: profile.ID, Name: "Prius", LicensePlate: "222BBB02"}
	require.NoError(t, testDB.Create(&first).Error)
	require.NoError(t, testDB.Create(&second).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/driver/vehicles/%d", second.ID),
		bytes.NewBufferString(`{"licensePlate":"111AAA02"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Номер второго автомобиля не изменился
	var kept models.Vehicle
	require.NoError(t, testDB.First(&kept, second.ID).Error)
	assert.Equal(t, "222BBB02", kept.LicensePlate)
}
