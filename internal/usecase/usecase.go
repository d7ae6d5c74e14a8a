// Package usecase holds one operation per type. Login and Google login check
// their input before any network call; the rental return use cases are plain
// delegates and leave validation to the workflow.
package usecase

import (
	"context"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"
)

type LoginInput struct {
	Username string
	Password string
}

type LoginUseCase interface {
	Execute(ctx context.Context, in LoginInput) (*domain.LoginResult, error)
}

type GoogleLoginUseCase interface {
	Execute(ctx context.Context, idToken string) (*domain.LoginResult, error)
}

type VerifyOtpUseCase interface {
	Execute(ctx context.Context, email, otp string) (*domain.LoginResult, error)
}

type ResendOtpUseCase interface {
	Execute(ctx context.Context, email string) error
}

type GetProfileUseCase interface {
	Execute(ctx context.Context) (*domain.User, error)
}

type UpdateProfileUseCase interface {
	Execute(ctx context.Context, req domain.UpdateProfileRequest) (*domain.User, error)
}

type AiAnalyzeUseCase interface {
	Execute(ctx context.Context, bookingID string, imagePaths []string) (*domain.APIResponse[domain.AnalyzeReturnResult], error)
}

type RentalReturnCreateReceiptUseCase interface {
	Execute(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.ReturnReceipt], error)
}

type SummaryReceiptUseCase interface {
	Execute(ctx context.Context, bookingID string) (*domain.APIResponse[domain.ReturnSummary], error)
}

type RentalReturnFinalizeUseCase interface {
	Execute(ctx context.Context, bookingID string, renterConfirmed bool) (*domain.APIResponse[domain.FinalizeReturnResult], error)
}

type SwapVehicleReturnUseCase interface {
	Execute(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.VehicleSwapResult], error)
}

type UpdateReturnReceiptUseCase interface {
	Execute(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.Empty], error)
}

type AdditionalFeeUseCase interface {
	List(ctx context.Context, bookingID string) ([]domain.AdditionalFee, error)
	Create(ctx context.Context, req domain.CreateAdditionalFeeRequest) (*domain.AdditionalFee, error)
	Delete(ctx context.Context, feeID string) error
}

type CompleteChargingInput struct {
	ChargingID   string
	StartBattery float64
	EndBattery   float64
	KwhCharged   float64
}

type ChargingUseCase interface {
	Start(ctx context.Context, bookingID string, startBattery float64) (*domain.ChargingRecord, error)
	Complete(ctx context.Context, in CompleteChargingInput) (*domain.ChargingRecord, error)
	History(ctx context.Context, bookingID string) ([]domain.ChargingRecord, error)
}

type GpsSharingUseCase interface {
	Invite(ctx context.Context, bookingID string) (*domain.GpsSharingSession, error)
	Join(ctx context.Context, invitationCode, bookingID string) (*domain.GpsSharingSession, error)
	Get(ctx context.Context, sessionID string) (*domain.GpsSharingSession, error)
}

type DocumentUseCase interface {
	ListMine(ctx context.Context) ([]domain.Document, error)
	UploadCitizenID(ctx context.Context, in repository.DocumentInput) (*domain.Document, error)
	UploadDrivingLicense(ctx context.Context, in repository.DocumentInput) (*domain.Document, error)
	Delete(ctx context.Context, documentID string) error
}
