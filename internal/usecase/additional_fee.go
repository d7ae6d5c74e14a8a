package usecase

import (
	"context"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
	"evrental-staff-core/internal/validation"
)

type additionalFeeUseCase struct {
	repo repository.AdditionalFeeRepository
}

func NewAdditionalFeeUseCase(repo repository.AdditionalFeeRepository) AdditionalFeeUseCase {
	return &additionalFeeUseCase{repo: repo}
}

func (u *additionalFeeUseCase) List(ctx context.Context, bookingID string) ([]domain.AdditionalFee, error) {
	fees, err := domain.Reply(u.repo.ListByBooking(ctx, bookingID))
	if err != nil {
		return nil, err
	}
	if *fees == nil {
		return []domain.AdditionalFee{}, nil
	}
	return *fees, nil
}

func (u *additionalFeeUseCase) Create(ctx context.Context, req domain.CreateAdditionalFeeRequest) (*domain.AdditionalFee, error) {
	row := domain.AdditionalFee{FeeType: req.FeeType, Amount: req.Amount}
	if err := validation.FeeRow(0, row).Err(); err != nil {
		return nil, err
	}
	return domain.Reply(u.repo.Create(ctx, req))
}

func (u *additionalFeeUseCase) Delete(ctx context.Context, feeID string) error {
	_, err := domain.Reply(u.repo.Delete(ctx, feeID))
	return err
}
