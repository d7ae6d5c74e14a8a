package usecase

import (
	"context"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
	"evrental-staff-core/internal/validation"
)

type chargingUseCase struct {
	repo repository.ChargingRepository
}

func NewChargingUseCase(repo repository.ChargingRepository) ChargingUseCase {
	return &chargingUseCase{repo: repo}
}

func (u *chargingUseCase) Start(ctx context.Context, bookingID string, startBattery float64) (*domain.ChargingRecord, error) {
	v := validation.RequireRange("startBatteryPercentage", startBattery, 0, 100, validation.MsgChargeStartRange)
	if err := validation.Collect(v).Err(); err != nil {
		return nil, err
	}
	return domain.Reply(u.repo.Start(ctx, bookingID, startBattery))
}

func (u *chargingUseCase) Complete(ctx context.Context, in CompleteChargingInput) (*domain.ChargingRecord, error) {
	if err := validation.Charging(in.StartBattery, in.EndBattery).Err(); err != nil {
		return nil, err
	}
	return domain.Reply(u.repo.Complete(ctx, in.ChargingID, in.EndBattery, in.KwhCharged))
}

func (u *chargingUseCase) History(ctx context.Context, bookingID string) ([]domain.ChargingRecord, error) {
	records, err := domain.Reply(u.repo.ListByBooking(ctx, bookingID))
	if err != nil {
		return nil, err
	}
	return *records, nil
}
