package remote

import (
	"context"

	"evrental-staff-core/internal/datasource"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
)

type additionalFeeRepository struct {
	ds *datasource.AdditionalFeeDataSource
}

func NewAdditionalFeeRepository(ds *datasource.AdditionalFeeDataSource) repository.AdditionalFeeRepository {
	return &additionalFeeRepository{ds: ds}
}

func (r *additionalFeeRepository) ListByBooking(ctx context.Context, bookingID string) (*domain.APIResponse[[]domain.AdditionalFee], error) {
	return r.ds.ListByBooking(ctx, bookingID)
}

func (r *additionalFeeRepository) Create(ctx context.Context, req domain.CreateAdditionalFeeRequest) (*domain.APIResponse[domain.AdditionalFee], error) {
	return r.ds.Create(ctx, req)
}

func (r *additionalFeeRepository) Delete(ctx context.Context, feeID string) (*domain.APIResponse[domain.Empty], error) {
	return r.ds.Delete(ctx, feeID)
}
