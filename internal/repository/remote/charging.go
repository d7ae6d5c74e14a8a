package remote

import (
	"context"

	"evrental-staff-core/internal/datasource"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
)

type chargingRepository struct {
	ds *datasource.ChargingDataSource
}

func NewChargingRepository(ds *datasource.ChargingDataSource) repository.ChargingRepository {
	return &chargingRepository{ds: ds}
}

func (r *chargingRepository) Start(ctx context.Context, bookingID string, startBattery float64) (*domain.APIResponse[domain.ChargingRecord], error) {
	return r.ds.Start(ctx, domain.StartChargingRequest{BookingID: bookingID, StartBattery: startBattery})
}

func (r *chargingRepository) Complete(ctx context.Context, chargingID string, endBattery, kwh float64) (*domain.APIResponse[domain.ChargingRecord], error) {
	return r.ds.Complete(ctx, domain.CompleteChargingRequest{ChargingID: chargingID, EndBattery: endBattery, KwhCharged: kwh})
}

func (r *chargingRepository) ListByBooking(ctx context.Context, bookingID string) (*domain.APIResponse[[]domain.ChargingRecord], error) {
	return r.ds.ListByBooking(ctx, bookingID)
}
