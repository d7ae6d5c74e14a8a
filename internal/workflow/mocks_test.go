package workflow

import (
	"context"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/repository"

	"github.com/stretchr/testify/mock"
)

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

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyReturnFinalized(ctx context.Context, notice domain.ReturnNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func ok[T any](data T) *domain.APIResponse[T] {
	return &domain.APIResponse[T]{Success: true, Code: 200, Data: data}
}
