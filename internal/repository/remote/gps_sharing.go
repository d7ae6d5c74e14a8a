package remote

import (
	"context"

	"evrental-staff-core/internal/datasource"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
)

type gpsSharingRepository struct {
	ds *datasource.GpsSharingDataSource
}

func NewGpsSharingRepository(ds *datasource.GpsSharingDataSource) repository.GpsSharingRepository {
	return &gpsSharingRepository{ds: ds}
}

func (r *gpsSharingRepository) Invite(ctx context.Context, bookingID string) (*domain.APIResponse[domain.GpsSharingSession], error) {
	return r.ds.Invite(ctx, domain.InviteSharingRequest{BookingID: bookingID})
}

func (r *gpsSharingRepository) Join(ctx context.Context, invitationCode, bookingID string) (*domain.APIResponse[domain.GpsSharingSession], error) {
	return r.ds.Join(ctx, domain.JoinSharingRequest{InvitationCode: invitationCode, BookingID: bookingID})
}

func (r *gpsSharingRepository) Get(ctx context.Context, sessionID string) (*domain.APIResponse[domain.GpsSharingSession], error) {
	return r.ds.Get(ctx, sessionID)
}
