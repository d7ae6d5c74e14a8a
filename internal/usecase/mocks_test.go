package usecase

import (
	"context"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockAuthRepo
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) Login(ctx context.Context, username, password string) (*domain.APIResponse[domain.LoginResult], error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.LoginResult]), args.Error(1)
}
func (m *MockAuthRepo) GoogleLogin(ctx context.Context, idToken string) (*domain.APIResponse[domain.LoginResult], error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.LoginResult]), args.Error(1)
}
func (m *MockAuthRepo) VerifyOtp(ctx context.Context, email, otp string) (*domain.APIResponse[domain.LoginResult], error) {
	args := m.Called(ctx, email, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.LoginResult]), args.Error(1)
}
func (m *MockAuthRepo) ResendOtp(ctx context.Context, email string) (*domain.APIResponse[domain.Empty], error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.Empty]), args.Error(1)
}
func (m *MockAuthRepo) GetProfile(ctx context.Context) (*domain.APIResponse[domain.User], error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.User]), args.Error(1)
}
func (m *MockAuthRepo) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.APIResponse[domain.User], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.User]), args.Error(1)
}

// MockRentalReturnRepo
type MockRentalReturnRepo struct {
	mock.Mock
}

func (m *MockRentalReturnRepo) AnalyzeReturn(ctx context.Context, bookingID string, imagePaths []string) (*domain.APIResponse[domain.AnalyzeReturnResult], error) {
	args := m.Called(ctx, bookingID, imagePaths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.AnalyzeReturnResult]), args.Error(1)
}
func (m *MockRentalReturnRepo) CreateReceipt(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.ReturnReceipt], error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.ReturnReceipt]), args.Error(1)
}
func (m *MockRentalReturnRepo) GetSummary(ctx context.Context, bookingID string) (*domain.APIResponse[domain.ReturnSummary], error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.ReturnSummary]), args.Error(1)
}
func (m *MockRentalReturnRepo) FinalizeReturn(ctx context.Context, bookingID string, renterConfirmed bool) (*domain.APIResponse[domain.FinalizeReturnResult], error) {
	args := m.Called(ctx, bookingID, renterConfirmed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.FinalizeReturnResult]), args.Error(1)
}
func (m *MockRentalReturnRepo) VehicleSwap(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.VehicleSwapResult], error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.VehicleSwapResult]), args.Error(1)
}
func (m *MockRentalReturnRepo) UpdateReturnReceipt(ctx context.Context, in repository.ReceiptInput) (*domain.APIResponse[domain.Empty], error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.Empty]), args.Error(1)
}

// MockAdditionalFeeRepo
type MockAdditionalFeeRepo struct {
	mock.Mock
}

func (m *MockAdditionalFeeRepo) ListByBooking(ctx context.Context, bookingID string) (*domain.APIResponse[[]domain.AdditionalFee], error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[[]domain.AdditionalFee]), args.Error(1)
}
func (m *MockAdditionalFeeRepo) Create(ctx context.Context, req domain.CreateAdditionalFeeRequest) (*domain.APIResponse[domain.AdditionalFee], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.AdditionalFee]), args.Error(1)
}
func (m *MockAdditionalFeeRepo) Delete(ctx context.Context, feeID string) (*domain.APIResponse[domain.Empty], error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.Empty]), args.Error(1)
}

// MockChargingRepo
type MockChargingRepo struct {
	mock.Mock
}

func (m *MockChargingRepo) Start(ctx context.Context, bookingID string, startBattery float64) (*domain.APIResponse[domain.ChargingRecord], error) {
	args := m.Called(ctx, bookingID, startBattery)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.ChargingRecord]), args.Error(1)
}
func (m *MockChargingRepo) Complete(ctx context.Context, chargingID string, endBattery, kwh float64) (*domain.APIResponse[domain.ChargingRecord], error) {
	args := m.Called(ctx, chargingID, endBattery, kwh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.ChargingRecord]), args.Error(1)
}
func (m *MockChargingRepo) ListByBooking(ctx context.Context, bookingID string) (*domain.APIResponse[[]domain.ChargingRecord], error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[[]domain.ChargingRecord]), args.Error(1)
}

// MockDocumentRepo
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) ListMine(ctx context.Context) (*domain.APIResponse[[]domain.Document], error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[[]domain.Document]), args.Error(1)
}
func (m *MockDocumentRepo) UploadCitizenID(ctx context.Context, in repository.DocumentInput) (*domain.APIResponse[domain.Document], error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.Document]), args.Error(1)
}
func (m *MockDocumentRepo) UploadDrivingLicense(ctx context.Context, in repository.DocumentInput) (*domain.APIResponse[domain.Document], error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.Document]), args.Error(1)
}
func (m *MockDocumentRepo) Delete(ctx context.Context, documentID string) (*domain.APIResponse[domain.Empty], error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIResponse[domain.Empty]), args.Error(1)
}

func ok[T any](data T) *domain.APIResponse[T] {
	return &domain.APIResponse[T]{Success: true, Code: 200, Data: data}
}

func failed[T any](code int, errorCode, message string) *domain.APIResponse[T] {
	return &domain.APIResponse[T]{Success: false, Code: code, ErrorCode: errorCode, Message: message}
}
