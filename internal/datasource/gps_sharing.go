package datasource

import (
	"context"
	"net/http"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/transport"
)

const gpsSharingService = "gpsSharing"

type GpsSharingDataSource struct {
	client Doer
}

func NewGpsSharingDataSource(client Doer) *GpsSharingDataSource {
	return &GpsSharingDataSource{client: client}
}

func (d *GpsSharingDataSource) Invite(ctx context.Context, req domain.InviteSharingRequest) (*domain.APIResponse[domain.GpsSharingSession], error) {
	if err := requireID("bookingId", req.BookingID); err != nil {
		return nil, err
	}
	return call[domain.GpsSharingSession](gpsSharingService, "invite", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPost, PathInviteSharing, req)
	}, "booking_id", req.BookingID)
}

func (d *GpsSharingDataSource) Join(ctx context.Context, req domain.JoinSharingRequest) (*domain.APIResponse[domain.GpsSharingSession], error) {
	if err := requireID("invitationCode", req.InvitationCode); err != nil {
		return nil, err
	}
	return call[domain.GpsSharingSession](gpsSharingService, "join", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPost, PathJoinSharing, req)
	}, "booking_id", req.BookingID)
}

func (d *GpsSharingDataSource) Get(ctx context.Context, sessionID string) (*domain.APIResponse[domain.GpsSharingSession], error) {
	if err := requireID("sessionId", sessionID); err != nil {
		return nil, err
	}
	return call[domain.GpsSharingSession](gpsSharingService, "get", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodGet, SharingSessionPath(sessionID), nil)
	}, "session_id", sessionID)
}
