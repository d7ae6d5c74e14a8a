package datasource

import (
	"context"
	"net/http"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/transport"
)

const chargingService = "charging"

type ChargingDataSource struct {
	client Doer
}

func NewChargingDataSource(client Doer) *ChargingDataSource {
	return &ChargingDataSource{client: client}
}

func (d *ChargingDataSource) Start(ctx context.Context, req domain.StartChargingRequest) (*domain.APIResponse[domain.ChargingRecord], error) {
	if err := requireID("bookingId", req.BookingID); err != nil {
		return nil, err
	}
	return call[domain.ChargingRecord](chargingService, "start", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPost, PathStartCharging, req)
	}, "booking_id", req.BookingID)
}

func (d *ChargingDataSource) Complete(ctx context.Context, req domain.CompleteChargingRequest) (*domain.APIResponse[domain.ChargingRecord], error) {
	if err := requireID("chargingId", req.ChargingID); err != nil {
		return nil, err
	}
	return call[domain.ChargingRecord](chargingService, "complete", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPut, PathCompleteCharging, req)
	}, "charging_id", req.ChargingID, "kwh", req.KwhCharged)
}

func (d *ChargingDataSource) ListByBooking(ctx context.Context, bookingID string) (*domain.APIResponse[[]domain.ChargingRecord], error) {
	if err := requireID("bookingId", bookingID); err != nil {
		return nil, err
	}
	return call[[]domain.ChargingRecord](chargingService, "listByBooking", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodGet, BookingChargingPath(bookingID), nil)
	}, "booking_id", bookingID)
}
