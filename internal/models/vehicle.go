package models

import (
	"time"
)

// Vehicle представляет автомобиль водителя
type Vehicle struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProfileID    uint      `json:"profile_id" gorm:"column:profile_id;not null"`
	Name         string    `json:"name" gorm:"column:name;not null;type:varchar(100)"`
	LicensePlate string    `json:"licensePlate" gorm:"column:license_plate;unique;not null;type:varchar(20)"`
	IsElectric   bool      `json:"isElectric" gorm:"column:is_electric;default:false"`
	DocumentUrl  string    `json:"documentUrl" gorm:"column:document_url;type:text"`
	ImageUrl     string    `json:"imageUrl" gorm:"column:image_url;type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Profile      Profile   `json:"-" gorm:"foreignKey:ProfileID"`
	Rides        []Ride    `json:"-" gorm:"foreignKey:VehicleID"`
}

type VehicleResponse struct {
	ID           uint      `json:"id"`
	ProfileID    uint      `json:"profile_id"`
	Name         string    `json:"name"`
	LicensePlate string    `json:"licensePlate"`
	IsElectric   bool      `json:"isElectric"`
	DocumentUrl  string    `json:"documentUrl,omitempty"`
	ImageUrl     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// VehicleCreate используется только для создания нового автомобиля
type VehicleCreate struct {
	Name         string `json:"name" binding:"required"`
	LicensePlate string `json:"licensePlate" binding:"required"`
	IsElectric   bool   `json:"isElectric"`
	DocumentUrl  string `json:"documentUrl"`
	ImageUrl     string `json:"imageUrl"`
}

func (v *Vehicle) ToResponse() VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		ProfileID:    v.ProfileID,
		Name:         v.Name,
		LicensePlate: v.LicensePlate,
		IsElectric:   v.IsElectric,
		DocumentUrl:  v.DocumentUrl,
		ImageUrl:     v.ImageUrl,
		CreatedAt:    v.CreatedAt,
	}
}
