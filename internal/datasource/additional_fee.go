package datasource

import (
	"context"
	"net/http"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/transport"
)

const additionalFeeService = "additionalFee"

type AdditionalFeeDataSource struct {
	client Doer
}

func NewAdditionalFeeDataSource(client Doer) *AdditionalFeeDataSource {
	return &AdditionalFeeDataSource{client: client}
}

func (d *AdditionalFeeDataSource) ListByBooking(ctx context.Context, bookingID string) (*domain.APIResponse[[]domain.AdditionalFee], error) {
	if err := requireID("bookingId", bookingID); err != nil {
		return nil, err
	}
	return call[[]domain.AdditionalFee](additionalFeeService, "listByBooking", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodGet, BookingFeesPath(bookingID), nil)
	}, "booking_id", bookingID)
}

func (d *AdditionalFeeDataSource) Create(ctx context.Context, req domain.CreateAdditionalFeeRequest) (*domain.APIResponse[domain.AdditionalFee], error) {
	if err := requireID("bookingId", req.BookingID); err != nil {
		return nil, err
	}
	return call[domain.AdditionalFee](additionalFeeService, "create", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodPost, PathAdditionalFee, req)
	}, "booking_id", req.BookingID, "fee_type", req.FeeType)
}

func (d *AdditionalFeeDataSource) Delete(ctx context.Context, feeID string) (*domain.APIResponse[domain.Empty], error) {
	if err := requireID("feeId", feeID); err != nil {
		return nil, err
	}
	return call[domain.Empty](additionalFeeService, "delete", func() (*transport.Response, error) {
		return d.client.DoJSON(ctx, http.MethodDelete, FeePath(feeID), nil)
	}, "fee_id", feeID)
}
