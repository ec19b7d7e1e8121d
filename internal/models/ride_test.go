package models

import (
	"testing"
	"time"
)

func TestComputeCO2(t *testing.T) {
	if got := ComputeCO2(100); got != 12.0 {
		t.Fatalf("ComputeCO2(100) = %v, ожидалось 12.0", got)
	}
	if got := ComputeCO2(0); got != 0 {
		t.Fatalf("ComputeCO2(0) = %v, ожидалось 0", got)
	}
}

func TestHasDeparted(t *testing.T) {
	now := time.Now()

	future := Ride{DepartureTime: now.Add(time.Hour)}
	if future.HasDeparted(now) {
		t.Fatalf("поездка в будущем не должна считаться состоявшейся")
	}

	past := Ride{DepartureTime: now.Add(-time.Hour)}
	if !past.HasDeparted(now) {
		t.Fatalf("поездка в прошлом должна считаться состоявшейся")
	}

	// Точное совпадение времени отправления считается состоявшимся
	exact := Ride{DepartureTime: now}
	if !exact.HasDeparted(now) {
		t.Fatalf("поездка в момент отправления должна считаться состоявшейся")
	}
}

func TestToResponseDepartedFlag(t *testing.T) {
	now := time.Now()
	ride := Ride{
		ID:             1,
		Origin:         "Алматы",
		Destination:    "Астана",
		DepartureTime:  now.Add(-time.Minute),
		SeatsTotal:     4,
		AvailableSeats: 2,
	}

	resp := ride.ToResponse(now)
	if !resp.Departed {
		t.Fatalf("ожидался флаг departed = true")
	}
	if resp.AvailableSeats != 2 || resp.SeatsTotal != 4 {
		t.Fatalf("места перенесены неверно: %+v", resp)
	}
}
