package domain

import "time"

type ChargingRecord struct {
	ID           string     `json:"id"`
	BookingID    string     `json:"bookingId"`
	StartBattery float64    `json:"startBatteryPercentage"`
	EndBattery   float64    `json:"endBatteryPercentage"`
	KwhCharged   float64    `json:"kwhCharged"`
	ChargingFee  int64      `json:"chargingFee"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

type StartChargingRequest struct {
	BookingID    string  `json:"bookingId"`
	StartBattery float64 `json:"startBatteryPercentage"`
}

type CompleteChargingRequest struct {
	ChargingID string  `json:"chargingId"`
	EndBattery float64 `json:"endBatteryPercentage"`
	KwhCharged float64 `json:"kwhCharged"`
}
