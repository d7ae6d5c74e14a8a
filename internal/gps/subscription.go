// Package gps follows the live position of shared vehicles over the
// telemetry websocket. A connection is kept until it fails; only then is it
// re-dialed, with capped exponential backoff and a fresh device token.
package gps

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"

	"golang.org/x/net/websocket"
)

// ErrSessionExpired stops a subscription for good.
var ErrSessionExpired = errors.New("gps sharing session expired")

// CredentialSource returns a current device token. Returning an error that
// wraps ErrSessionExpired ends the subscription.
type CredentialSource interface {
	Credentials(ctx context.Context, deviceID string) (domain.DeviceTracking, error)
}

type Config struct {
	URL    string
	Origin string
	// HealthyAfter is how long a connection must last for the backoff to reset.
	HealthyAfter time.Duration
	Backoff      Backoff
}

type Subscription struct {
	cfg      Config
	creds    CredentialSource
	tracking domain.DeviceTracking
	now      func() time.Time
	dials    int
}

func NewSubscription(cfg Config, tracking domain.DeviceTracking, creds CredentialSource) *Subscription {
	if cfg.Backoff.Initial == 0 {
		cfg.Backoff = DefaultBackoff()
	}
	if cfg.HealthyAfter == 0 {
		cfg.HealthyAfter = time.Minute
	}
	return &Subscription{cfg: cfg, creds: creds, tracking: tracking, now: time.Now}
}

// Dials reports how many connections were opened. Not safe to call while Run is active.
func (s *Subscription) Dials() int { return s.dials }

// Run streams frames into out until ctx is cancelled (nil) or the session
// expires (ErrSessionExpired).
func (s *Subscription) Run(ctx context.Context, out chan<- domain.TelemetryFrame) error {
	log := logger.WithComponent("gps").With("device_id", s.tracking.DeviceID)
	attempt := 0

	for {
		started := s.now()
		err := s.connectAndRead(ctx, out)
		if ctx.Err() != nil {
			return nil
		}
		if s.now().Sub(started) >= s.cfg.HealthyAfter {
			attempt = 0
		}

		reason := "read"
		var de *dialError
		if errors.As(err, &de) {
			reason = "dial"
		}
		reconnectsTotal.WithLabelValues(reason).Inc()

		delay := s.cfg.Backoff.Delay(attempt)
		attempt++
		log.Warn("Telemetry connection lost", "error", err, "retry_in", delay, "attempt", attempt)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}

		if s.creds != nil {
			tracking, err := s.creds.Credentials(ctx, s.tracking.DeviceID)
			switch {
			case errors.Is(err, ErrSessionExpired):
				log.Info("Telemetry stopped", "reason", "session expired")
				return err
			case err != nil:
				if ctx.Err() != nil {
					return nil
				}
				log.Warn("Device token refresh failed, keeping the old token", "error", err)
			default:
				s.tracking = tracking
			}
		}
	}
}

type dialError struct{ err error }

func (e *dialError) Error() string { return "dial: " + e.err.Error() }
func (e *dialError) Unwrap() error { return e.err }

func (s *Subscription) connectAndRead(ctx context.Context, out chan<- domain.TelemetryFrame) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return &dialError{err: err}
	}
	s.dials++
	defer conn.Close()

	// Receive does not watch ctx; closing the conn unblocks it.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var frame domain.TelemetryFrame
		if err := websocket.JSON.Receive(conn, &frame); err != nil {
			return err
		}
		framesTotal.Inc()
		if frame.DeviceID == "" {
			frame.DeviceID = s.tracking.DeviceID
		}
		select {
		case out <- frame:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Subscription) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("telemetry url: %w", err)
	}
	q := u.Query()
	q.Set("deviceId", s.tracking.DeviceID)
	u.RawQuery = q.Encode()

	wsCfg, err := websocket.NewConfig(u.String(), s.cfg.Origin)
	if err != nil {
		return nil, err
	}
	if s.tracking.Token != "" {
		wsCfg.Header.Set("Authorization", "Bearer "+s.tracking.Token)
	}
	return wsCfg.DialContext(ctx)
}
