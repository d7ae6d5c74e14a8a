package remote

import (
	"context"

	"evrental-staff-core/internal/datasource"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
)

type rentalReturnRepository struct {
	ds    *datasource.RentalReturnDataSource
	clock Clock
}

// NewRentalReturnRepository builds the adapter. A nil clock uses time.Now.
func NewRentalReturnRepository(ds *datasource.RentalReturnDataSource, clock Clock) repository.RentalReturnRepository {
	return &rentalReturnRepository{ds: ds, clock: clock}
}

func (r *rentalReturnRepository) AnalyzeReturn(ctx context.Context, bookingID string, imagePaths []string) (*domain.APIResponse[domain.AnalyzeReturnResult], error) {
	return r.ds.AnalyzeReturn(ctx, domain.AnalyzeReturnRequest{
		BookingID:    bookingID,
		ReturnImages: returnImageParts(r.clock, "ReturnImages", imagePaths),
	})
}

func (r *rentalReturnRepository) CreateReceipt(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.ReturnReceipt], error) {
	return r.ds.CreateReceipt(ctx, r.receiptRequest(in))
}

func (r *rentalReturnRepository) GetSummary(ctx context.Context, bookingID string) (*domain.APIResponse[domain.ReturnSummary], error) {
	return r.ds.GetSummary(ctx, bookingID)
}

func (r *rentalReturnRepository) FinalizeReturn(ctx context.Context, bookingID string, renterConfirmed bool) (*domain.APIResponse[domain.FinalizeReturnResult], error) {
	return r.ds.FinalizeReturn(ctx, domain.FinalizeReturnRequest{BookingID: bookingID, RenterConfirmed: renterConfirmed})
}

func (r *rentalReturnRepository) VehicleSwap(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.VehicleSwapResult], error) {
	return r.ds.VehicleSwap(ctx, r.receiptRequest(in))
}

func (r *rentalReturnRepository) UpdateReturnReceipt(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.Empty], error) {
	return r.ds.UpdateReturnReceipt(ctx, r.receiptRequest(in))
}

func (r *rentalReturnRepository) receiptRequest(in repository.ReceiptInput) domain.ReceiptRequest {
	return domain.ReceiptRequest{
		BookingID:            in.BookingID,
		RentalReceiptID:      in.RentalReceiptID,
		ActualReturnDatetime: in.ActualReturnAt,
		EndOdometerKm:        in.EndOdometerKm,
		EndBatteryPercentage: in.EndBatteryPercentage,
		Notes:                in.Notes,
		ReturnImageURLs:      in.ReturnImageURLs,
		AdditionalFees:       in.AdditionalFees,
		ChecklistImage:       namedPart(r.clock, "checklist", "ChecklistImage", in.ChecklistImagePath),
	}
}
