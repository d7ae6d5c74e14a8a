package usecase

import (
	"context"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
)

type aiAnalyzeUseCase struct {
	repo repository.RentalReturnRepository
}

func NewAiAnalyzeUseCase(repo repository.RentalReturnRepository) AiAnalyzeUseCase {
	return &aiAnalyzeUseCase{repo: repo}
}

func (u *aiAnalyzeUseCase) Execute(ctx context.Context, bookingID string, imagePaths []string) (*domain.APIResponse[domain.AnalyzeReturnResult], error) {
	return u.repo.AnalyzeReturn(ctx, bookingID, imagePaths)
}

type createReceiptUseCase struct {
	repo repository.RentalReturnRepository
}

func NewRentalReturnCreateReceiptUseCase(repo repository.RentalReturnRepository) RentalReturnCreateReceiptUseCase {
	return &createReceiptUseCase{repo: repo}
}

func (u *createReceiptUseCase) Execute(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.ReturnReceipt], error) {
	return u.repo.CreateReceipt(ctx, in)
}

type summaryReceiptUseCase struct {
	repo repository.RentalReturnRepository
}

func NewSummaryReceiptUseCase(repo repository.RentalReturnRepository) SummaryReceiptUseCase {
	return &summaryReceiptUseCase{repo: repo}
}

func (u *summaryReceiptUseCase) Execute(ctx context.Context, bookingID string) (*domain.APIResponse[domain.ReturnSummary], error) {
	return u.repo.GetSummary(ctx, bookingID)
}

type finalizeUseCase struct {
	repo repository.RentalReturnRepository
}

func NewRentalReturnFinalizeUseCase(repo repository.RentalReturnRepository) RentalReturnFinalizeUseCase {
	return &finalizeUseCase{repo: repo}
}

func (u *finalizeUseCase) Execute(ctx context.Context, bookingID string, renterConfirmed bool) (*domain.APIResponse[domain.FinalizeReturnResult], error) {
	return u.repo.FinalizeReturn(ctx, bookingID, renterConfirmed)
}

type swapVehicleUseCase struct {
	repo repository.RentalReturnRepository
}

func NewSwapVehicleReturnUseCase(repo repository.RentalReturnRepository) SwapVehicleReturnUseCase {
	return &swapVehicleUseCase{repo: repo}
}

func (u *swapVehicleUseCase) Execute(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.VehicleSwapResult], error) {
	return u.repo.VehicleSwap(ctx, in)
}

type updateReceiptUseCase struct {
	repo repository.RentalReturnRepository
}

func NewUpdateReturnReceiptUseCase(repo repository.RentalReturnRepository) UpdateReturnReceiptUseCase {
	return &updateReceiptUseCase{repo: repo}
}

func (u *updateReceiptUseCase) Execute(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.Empty], error) {
	return u.repo.UpdateReturnReceipt(ctx, in)
}
