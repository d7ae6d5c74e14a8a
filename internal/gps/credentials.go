package gps

import (
	"context"
	"fmt"
	"time"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/usecase"
)

// SessionCredentials re-reads the sharing session to get fresh device tokens.
type SessionCredentials struct {
	sharing   usecase.GpsSharingUseCase
	sessionID string
	now       func() time.Time
}

func NewSessionCredentials(sharing usecase.GpsSharingUseCase, sessionID string) *SessionCredentials {
	return &SessionCredentials{sharing: sharing, sessionID: sessionID, now: time.Now}
}

func (c *SessionCredentials) Credentials(ctx context.Context, deviceID string) (domain.DeviceTracking, error) {
	session, err := c.sharing.Get(ctx, c.sessionID)
	if err != nil {
		return domain.DeviceTracking{}, err
	}
	if session.Expired(c.now()) {
		return domain.DeviceTracking{}, fmt.Errorf("session %s: %w", c.sessionID, ErrSessionExpired)
	}
	for _, p := range []*domain.SharingParticipant{session.Owner, session.Guest} {
		if p != nil && p.Tracking.DeviceID == deviceID {
			return p.Tracking, nil
		}
	}
	return domain.DeviceTracking{}, fmt.Errorf("device %s is no longer in session %s", deviceID, c.sessionID)
}
