package repository

import (
	"context"
	"errors"
	"time"

	"evrental-staff-core/internal/domain"
)

var ErrDraftNotFound = errors.New("return draft not found")

// ReceiptInput is the use-case shape shared by create-receipt, vehicle-swap and
// update-receipt. ChecklistImagePath is a local file; empty means no checklist photo.
type ReceiptInput struct {
	BookingID            string
	RentalReceiptID      string
	ActualReturnAt       time.Time
	EndOdometerKm        float64
	EndBatteryPercentage float64
	Notes                string
	ReturnImageURLs      []string
	AdditionalFees       []domain.AdditionalFee
	ChecklistImagePath   string
}

// DocumentInput is a citizen id or driving license with local image paths.
type DocumentInput struct {
	IDNumber       string
	FullName       string
	DateOfBirth    string
	IssueDate      string
	ExpiryDate     string
	LicenseClass   string
	FrontImagePath string
	BackImagePath  string
}

type AuthRepository interface {
	Login(ctx context.Context, username, password string) (*domain.APIResponse[domain.LoginResult], error)
	GoogleLogin(ctx context.Context, idToken string) (*domain.APIResponse[domain.LoginResult], error)
	VerifyOtp(ctx context.Context, email, otp string) (*domain.APIResponse[domain.LoginResult], error)
	ResendOtp(ctx context.Context, email string) (*domain.APIResponse[domain.Empty], error)
	GetProfile(ctx context.Context) (*domain.APIResponse[domain.User], error)
	UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.APIResponse[domain.User], error)
}

type RentalReturnRepository interface {
	AnalyzeReturn(ctx context.Context, bookingID string, imagePaths []string) (*domain.APIResponse[domain.AnalyzeReturnResult], error)
	CreateReceipt(ctx context.Context, in ReceiptInput) (*domain.APIResponse[domain.ReturnReceipt], error)
	GetSummary(ctx context.Context, bookingID string) (*domain.APIResponse[domain.ReturnSummary], error)
	FinalizeReturn(ctx context.Context, bookingID string, renterConfirmed bool) (*domain.APIResponse[domain.FinalizeReturnResult], error)
	VehicleSwap(ctx context.Context, in ReceiptInput) (*domain.APIResponse[domain.VehicleSwapResult], error)
	UpdateReturnReceipt(ctx context.Context, in ReceiptInput) (*domain.APIResponse[domain.Empty], error)
}

type AdditionalFeeRepository interface {
	ListByBooking(ctx context.Context, bookingID string) (*domain.APIResponse[[]domain.AdditionalFee], error)
	Create(ctx context.Context, req domain.CreateAdditionalFeeRequest) (*domain.APIResponse[domain.AdditionalFee], error)
	Delete(ctx context.Context, feeID string) (*domain.APIResponse[domain.Empty], error)
}

type ChargingRepository interface {
	Start(ctx context.Context, bookingID string, startBattery float64) (*domain.APIResponse[domain.ChargingRecord], error)
	Complete(ctx context.Context, chargingID string, endBattery, kwh float64) (*domain.APIResponse[domain.ChargingRecord], error)
	ListByBooking(ctx context.Context, bookingID string) (*domain.APIResponse[[]domain.ChargingRecord], error)
}

type GpsSharingRepository interface {
	Invite(ctx context.Context, bookingID string) (*domain.APIResponse[domain.GpsSharingSession], error)
	Join(ctx context.Context, invitationCode, bookingID string) (*domain.APIResponse[domain.GpsSharingSession], error)
	Get(ctx context.Context, sessionID string) (*domain.APIResponse[domain.GpsSharingSession], error)
}

type DocumentRepository interface {
	ListMine(ctx context.Context) (*domain.APIResponse[[]domain.Document], error)
	UploadCitizenID(ctx context.Context, in DocumentInput) (*domain.APIResponse[domain.Document], error)
	UploadDrivingLicense(ctx context.Context, in DocumentInput) (*domain.APIResponse[domain.Document], error)
	Delete(ctx context.Context, documentID string) (*domain.APIResponse[domain.Empty], error)
}

// DraftRepository persists return workflow state between steps.
type DraftRepository interface {
	Save(ctx context.Context, draft *domain.ReturnDraft) error
	Get(ctx context.Context, id string) (*domain.ReturnDraft, error)
	GetActiveByBooking(ctx context.Context, bookingID string) (*domain.ReturnDraft, error)
	List(ctx context.Context) ([]domain.ReturnDraft, error)
	Delete(ctx context.Context, id string) error
	DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
