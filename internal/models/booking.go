package models

import (
	"time"
)

// Booking представляет бронирование мест в поездке
type Booking struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"column:user_id;not null"`
	RideID      uint      `json:"ride_id" gorm:"column:ride_id;not null"`
	SeatsBooked int       `json:"seatsBooked" gorm:"column:seats_booked;not null"`
	BookingTime time.Time `json:"bookingTime" gorm:"column:booking_time;autoCreateTime"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
	Ride        Ride      `json:"-" gorm:"foreignKey:RideID"`
}

// BookingResponse представляет ответ API с информацией о бронировании
type BookingResponse struct {
	ID          uint         `json:"id"`
	RideID      uint         `json:"ride_id"`
	UserID      uint         `json:"user_id"`
	SeatsBooked int          `json:"seatsBooked"`
	BookingTime time.Time    `json:"bookingTime"`
	TotalCost   float64      `json:"totalCost"`
	RideInfo    RideResponse `json:"ride_info,omitempty"`
}

// BookingCreate используется только для создания нового бронирования
type BookingCreate struct {
	Seats int `json:"seats" binding:"required,min=1"`
}
