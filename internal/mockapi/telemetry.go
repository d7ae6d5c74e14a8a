package mockapi

import (
	"errors"
	"math"
	"net/http"
	"time"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/security"

	"golang.org/x/net/websocket"
)

// telemetryHandler streams synthetic frames for the device named by the
// deviceId query parameter. The connection is closed when the device token
// expires, so clients have to come back with a renewed one.
func (s *Server) telemetryHandler() http.Handler {
	return websocket.Server{
		Handshake: func(cfg *websocket.Config, r *http.Request) error {
			_, err := s.deviceClaims(r)
			return err
		},
		Handler: s.streamTelemetry,
	}
}

func (s *Server) deviceClaims(r *http.Request) (*security.UserClaims, error) {
	device := r.URL.Query().Get("deviceId")
	if device == "" {
		return nil, errors.New("deviceId is required")
	}
	claims, err := s.tokens.ValidateToken(bearerToken(r), security.TokenTypeDevice)
	if err != nil {
		return nil, err
	}
	if claims.Subject != device {
		return nil, errors.New("token was issued for another device")
	}
	return claims, nil
}

func (s *Server) streamTelemetry(ws *websocket.Conn) {
	defer ws.Close()
	claims, err := s.deviceClaims(ws.Request())
	if err != nil {
		return
	}
	device := claims.Subject
	log := logger.WithComponent("telemetry").With("device_id", device)
	log.Info("Telemetry stream opened")

	expired := time.NewTimer(time.Until(claims.ExpiresAt.Time))
	defer expired.Stop()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		if err := websocket.JSON.Send(ws, syntheticFrame(device, i, s.now())); err != nil {
			log.Info("Telemetry stream closed", "reason", err)
			return
		}
		select {
		case <-expired.C:
			log.Info("Telemetry stream closed", "reason", "device token expired")
			return
		case <-ticker.C:
		}
	}
}

// syntheticFrame walks a small loop around District 1.
func syntheticFrame(device string, i int, now time.Time) domain.TelemetryFrame {
	angle := float64(i) * math.Pi / 30
	return domain.TelemetryFrame{
		DeviceID:          device,
		Latitude:          10.7769 + 0.005*math.Sin(angle),
		Longitude:         106.7009 + 0.005*math.Cos(angle),
		SpeedKmh:          25 + 10*math.Sin(angle/2),
		BatteryPercentage: math.Max(5, 90-float64(i)*0.05),
		Timestamp:         now,
	}
}
