package mockapi

import (
	"time"

	"evrental-staff-core/internal/domain"
)

const (
	bookingActive    = "ACTIVE"
	bookingReturning = "RETURNING"
	bookingCompleted = "COMPLETED"
	bookingSwapped   = "SWAPPED"
)

type staffAccount struct {
	user         domain.User
	passwordHash []byte
	failed       int
	otp          string
}

type booking struct {
	ID            string
	RenterID      string
	RenterName    string
	RenterEmail   string
	Vehicle       domain.Vehicle
	StartAt       time.Time
	EndAt         time.Time
	StartOdometer float64
	StartBattery  float64
	Pricing       Pricing
	Status        string
	Receipt       *receipt
	Fees          []domain.AdditionalFee
	Charging      []domain.ChargingRecord
}

type receipt struct {
	ID             string
	ActualReturnAt time.Time
	EndOdometer    float64
	EndBattery     float64
	Notes          string
	Images         []string
	ChecklistURL   string
	CreatedAt      time.Time
}
