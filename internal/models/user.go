package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	Username     string    `json:"username" gorm:"column:username;unique;not null;type:varchar(150)"`
	Email        string    `json:"email" gorm:"column:email;not null;type:varchar(255)"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null;type:text"`
	FirstName    string    `json:"firstName" gorm:"column:first_name;type:varchar(255)"`
	LastName     string    `json:"lastName" gorm:"column:last_name;type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime;type:timestamp with time zone"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime;type:timestamp with time zone"`
	Profile      *Profile  `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

// Profile представляет расширение учетной записи: телефон, аватар и флаг водителя
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"column:user_id;unique;not null"`
	Phone     string    `json:"phone" gorm:"column:phone;type:varchar(20)"`
	AvatarUrl string    `json:"avatarUrl" gorm:"column:avatar_url;type:text"`
	IsDriver  bool      `json:"isDriver" gorm:"column:is_driver;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	AvatarUrl string    `json:"avatarUrl"`
	IsDriver  bool      `json:"isDriver"`
	CreatedAt time.Time `json:"created_at"`
}

// AfterFind вызывается после загрузки модели из базы данных
func (p *Profile) AfterFind(tx *gorm.DB) error {
	if p.AvatarUrl == "" {
		return nil
	}

	if p.AvatarUrl[0] != '/' {
		p.AvatarUrl = "/" + p.AvatarUrl
	}

	return nil
}
