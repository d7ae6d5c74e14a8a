package gps

import (
	"context"

	"evrental-staff-core/internal/domain"

	"golang.org/x/sync/errgroup"
)

type Role string

const (
	RoleOwner Role = "owner"
	RoleGuest Role = "guest"
)

// Update is one frame tagged with whose vehicle sent it.
type Update struct {
	Role  Role
	Frame domain.TelemetryFrame
}

// Tracker follows the owner and guest vehicles of one sharing session at once.
type Tracker struct {
	cfg   Config
	creds CredentialSource
}

func NewTracker(cfg Config, creds CredentialSource) *Tracker {
	return &Tracker{cfg: cfg, creds: creds}
}

// Run fans both vehicles' frames into out until ctx is cancelled or the
// session expires. out is not closed.
func (t *Tracker) Run(ctx context.Context, session *domain.GpsSharingSession, out chan<- Update) error {
	g, ctx := errgroup.WithContext(ctx)

	for role, p := range map[Role]*domain.SharingParticipant{RoleOwner: session.Owner, RoleGuest: session.Guest} {
		if p == nil || p.Tracking.DeviceID == "" {
			continue
		}
		sub := NewSubscription(t.cfg, p.Tracking, t.creds)
		frames := make(chan domain.TelemetryFrame)

		g.Go(func() error {
			return sub.Run(ctx, frames)
		})
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case f := <-frames:
					select {
					case out <- Update{Role: role, Frame: f}:
					case <-ctx.Done():
						return nil
					}
				}
			}
		})
	}
	return g.Wait()
}
