package models

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("не удалось открыть базу: %v", err)
	}
	if err := testDB.AutoMigrate(&User{}, &Profile{}); err != nil {
		t.Fatalf("миграция не прошла: %v", err)
	}
	return testDB
}

func TestProfileAfterFindNormalizesAvatar(t *testing.T) {
	testDB := openTestDB(t)

	user := User{Username: "rider", Email: "rider@example.com", PasswordHash: "x"}
	if err := testDB.Create(&user).Error; err != nil {
		t.Fatalf("создание пользователя: %v", err)
	}

	profile := Profile{UserID: user.ID, Phone: "+77001234567", AvatarUrl: "avatars/rider.png"}
	if err := testDB.Create(&profile).Error; err != nil {
		t.Fatalf("создание профиля: %v", err)
	}

	// Хук AfterFind должен добавить ведущий слэш при загрузке
	var loaded Profile
	if err := testDB.First(&loaded, profile.ID).Error; err != nil {
		t.Fatalf("загрузка профиля: %v", err)
	}
	if loaded.AvatarUrl != "/avatars/rider.png" {
		t.Fatalf("AvatarUrl = %q, ожидалось %q", loaded.AvatarUrl, "/avatars/rider.png")
	}
}

func TestProfileAfterFindEmptyAvatar(t *testing.T) {
	testDB := openTestDB(t)

	user := User{Username: "rider", Email: "rider@example.com", PasswordHash: "x"}
	if err := testDB.Create(&user).Error; err != nil {
		t.Fatalf("создание пользователя: %v", err)
	}

	profile := Profile{UserID: user.ID, Phone: "+77001234567"}
	if err := testDB.Create(&profile).Error; err != nil {
		t.Fatalf("создание профиля: %v", err)
	}

	var loaded Profile
	if err := testDB.First(&loaded, profile.ID).Error; err != nil {
		t.Fatalf("загрузка профиля: %v", err)
	}
	if loaded.AvatarUrl != "" {
		t.Fatalf("AvatarUrl = %q, ожидалась пустая строка", loaded.AvatarUrl)
	}
}
