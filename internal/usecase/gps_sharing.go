package usecase

import (
	"context"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
)

type gpsSharingUseCase struct {
	repo repository.GpsSharingRepository
}

func NewGpsSharingUseCase(repo repository.GpsSharingRepository) GpsSharingUseCase {
	return &gpsSharingUseCase{repo: repo}
}

func (u *gpsSharingUseCase) Invite(ctx context.Context, bookingID string) (*domain.GpsSharingSession, error) {
	return domain.Reply(u.repo.Invite(ctx, bookingID))
}

func (u *gpsSharingUseCase) Join(ctx context.Context, invitationCode, bookingID string) (*domain.GpsSharingSession, error) {
	return domain.Reply(u.repo.Join(ctx, invitationCode, bookingID))
}

func (u *gpsSharingUseCase) Get(ctx context.Context, sessionID string) (*domain.GpsSharingSession, error) {
	return domain.Reply(u.repo.Get(ctx, sessionID))
}
