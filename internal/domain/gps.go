package domain

import "time"

type SharingStatus string

const (
	SharingStatusPending SharingStatus = "PENDING"
	SharingStatusActive  SharingStatus = "ACTIVE"
	SharingStatusExpired SharingStatus = "EXPIRED"
)

type Vehicle struct {
	VehicleID    string `json:"vehicleId"`
	LicensePlate string `json:"licensePlate"`
	Model        string `json:"model"`
}

// DeviceTracking is the short-lived credential for a vehicle's telemetry stream.
type DeviceTracking struct {
	DeviceID       string    `json:"deviceId"`
	Token          string    `json:"token"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt"`
}

type SharingParticipant struct {
	RenterID  string         `json:"renterId"`
	FullName  string         `json:"fullName"`
	BookingID string         `json:"bookingId"`
	Vehicle   Vehicle        `json:"vehicle"`
	Tracking  DeviceTracking `json:"tracking"`
}

type GpsSharingSession struct {
	SessionID           string              `json:"sessionId"`
	InvitationCode      string              `json:"invitationCode"`
	Status              SharingStatus       `json:"status"`
	ExpiresAt           time.Time           `json:"expiresAt"`
	InvitationExpiresAt time.Time           `json:"invitationExpiresAt"`
	Owner               *SharingParticipant `json:"owner"`
	Guest               *SharingParticipant `json:"guest,omitempty"`
}

// Expired reports whether the session is past its server-side expiry at now.
func (s *GpsSharingSession) Expired(now time.Time) bool {
	return s.Status == SharingStatusExpired || (!s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt))
}

type InviteSharingRequest struct {
	BookingID string `json:"bookingId"`
}

type JoinSharingRequest struct {
	InvitationCode string `json:"invitationCode"`
	BookingID      string `json:"bookingId"`
}

type TelemetryFrame struct {
	DeviceID          string    `json:"deviceId"`
	Latitude          float64   `json:"lat"`
	Longitude         float64   `json:"lng"`
	SpeedKmh          float64   `json:"speed"`
	BatteryPercentage float64   `json:"batteryPercentage"`
	Timestamp         time.Time `json:"timestamp"`
}
