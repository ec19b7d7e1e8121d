package models

import (
	"time"
)

// CO2PerKm - экономия CO2 (кг) на один километр совместной поездки
const CO2PerKm = 0.120

// Ride представляет опубликованную поездку
type Ride struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	VehicleID      uint      `json:"vehicle_id" gorm:"column:vehicle_id;not null"`
	DriverID       uint      `json:"driver_id" gorm:"column:driver_id;not null"`
	Origin         string    `json:"origin" gorm:"column:origin;not null;type:varchar(200)"`
	Destination    string    `json:"destination" gorm:"column:destination;not null;type:varchar(200)"`
	DepartureTime  time.Time `json:"departureTime" gorm:"column:departure_time;not null"`
	SeatsTotal     int       `json:"seatsTotal" gorm:"column:seats_total;not null"`
	AvailableSeats int       `json:"availableSeats" gorm:"column:available_seats;not null"`
	DistanceKm     float64   `json:"distanceKm" gorm:"column:distance_km;default:0"`
	CO2Saved       float64   `json:"co2Saved" gorm:"column:co2_saved;default:0"`
	Rate           float64   `json:"rate" gorm:"column:rate;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Vehicle        Vehicle   `json:"-" gorm:"foreignKey:VehicleID"`
	Driver         Profile   `json:"-" gorm:"foreignKey:DriverID"`
	Bookings       []Booking `json:"-" gorm:"foreignKey:RideID"`
}

type RideResponse struct {
	ID             uint      `json:"id"`
	VehicleID      uint      `json:"vehicle_id"`
	DriverID       uint      `json:"driver_id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	SeatsTotal     int       `json:"seatsTotal"`
	AvailableSeats int       `json:"availableSeats"`
	DistanceKm     float64   `json:"distanceKm"`
	CO2Saved       float64   `json:"co2Saved"`
	Rate           float64   `json:"rate"`
	VehicleName    string    `json:"vehicleName,omitempty"`
	IsElectric     bool      `json:"isElectric"`
	DriverName     string    `json:"driverName,omitempty"`
	Departed       bool      `json:"departed"`
	CreatedAt      time.Time `json:"created_at"`
}

// RideCreate используется только для создания новой поездки
type RideCreate struct {
	VehicleID     uint      `json:"vehicleId" binding:"required"`
	Origin        string    `json:"origin" binding:"required"`
	Destination   string    `json:"destination" binding:"required"`
	DepartureTime time.Time `json:"departureTime" binding:"required"`
	Seats         int       `json:"seats" binding:"required,min=1"`
	DistanceKm    float64   `json:"distanceKm"`
	Rate          float64   `json:"rate"`
}

// ComputeCO2 считает экономию CO2 для дистанции. Значение фиксируется
// один раз при создании поездки и при редактировании не пересчитывается.
func ComputeCO2(distanceKm float64) float64 {
	return distanceKm * CO2PerKm
}

// HasDeparted сообщает, ушла ли поездка к моменту now
func (r *Ride) HasDeparted(now time.Time) bool {
	return !r.DepartureTime.After(now)
}

func (r *Ride) ToResponse(now time.Time) RideResponse {
	resp := RideResponse{
		ID:             r.ID,
		VehicleID:      r.VehicleID,
		DriverID:       r.DriverID,
		Origin:         r.Origin,
		Destination:    r.Destination,
		DepartureTime:  r.DepartureTime,
		SeatsTotal:     r.SeatsTotal,
		AvailableSeats: r.AvailableSeats,
		DistanceKm:     r.DistanceKm,
		CO2Saved:       r.CO2Saved,
		Rate:           r.Rate,
		Departed:       r.HasDeparted(now),
		CreatedAt:      r.CreatedAt,
	}

	if r.Vehicle.ID != 0 {
		resp.VehicleName = r.Vehicle.Name
		resp.IsElectric = r.Vehicle.IsElectric
	}
	if r.Driver.ID != 0 {
		resp.DriverName = r.Driver.User.FirstName + " " + r.Driver.User.LastName
	}

	return resp
}
