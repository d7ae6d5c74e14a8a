// Package workflow drives one staff return from photo capture to finalize as
// an explicit state machine whose state survives restarts through a
// repository.DraftRepository.
//
//	photo_capture -> manual_inspection -> additional_fees -> receipt_created -> summary -> finalized
//
// Swap and update move a draft back to summary with a fresh settlement.
// Abandon deletes an unfinished draft.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/repository"
	"evrental-staff-core/internal/usecase"
	"evrental-staff-core/internal/validation"
)

var ErrInvalidTransition = errors.New("invalid return step transition")

const (
	opCapturePhotos = "capture_photos"
	opInspection    = "submit_inspection"
	opFees          = "submit_additional_fees"
	opSummary       = "load_summary"
	opFinalize      = "finalize"
	opSwap          = "swap_vehicle"
	opUpdate        = "update_receipt"
)

var allowedFrom = map[string][]domain.ReturnStep{
	opCapturePhotos: {domain.StepPhotoCapture, domain.StepManualInspection},
	opInspection:    {domain.StepManualInspection, domain.StepAdditionalFees},
	opFees:          {domain.StepAdditionalFees},
	opSummary:       {domain.StepReceiptCreated, domain.StepSummary},
	opFinalize:      {domain.StepSummary},
	opSwap:          {domain.StepReceiptCreated, domain.StepSummary},
	opUpdate:        {domain.StepReceiptCreated, domain.StepSummary},
}

// Notifier tells the renter about a finalized return.
type Notifier interface {
	NotifyReturnFinalized(ctx context.Context, notice domain.ReturnNotice) error
}

// UseCases are the rental return operations the workflow sequences.
type UseCases struct {
	Analyze       usecase.AiAnalyzeUseCase
	CreateReceipt usecase.RentalReturnCreateReceiptUseCase
	Summary       usecase.SummaryReceiptUseCase
	Finalize      usecase.RentalReturnFinalizeUseCase
	Swap          usecase.SwapVehicleReturnUseCase
	UpdateReceipt usecase.UpdateReturnReceiptUseCase
}

type InspectionInput struct {
	EndOdometerKm        string
	EndBatteryPercentage string
	ChecklistImagePath   string
	Notes                string
	// ActualReturnAt defaults to the time of submission.
	ActualReturnAt time.Time
}

// ReceiptEdit changes a created receipt. Nil fields keep the draft's values.
type ReceiptEdit struct {
	Inspection     *InspectionInput
	AdditionalFees []domain.AdditionalFee
}

type Option func(*ReturnWorkflow)

func WithNotifier(n Notifier) Option {
	return func(w *ReturnWorkflow) { w.notifier = n }
}

func WithClock(now func() time.Time) Option {
	return func(w *ReturnWorkflow) { w.now = now }
}

type ReturnWorkflow struct {
	uc       UseCases
	drafts   repository.DraftRepository
	notifier Notifier
	now      func() time.Time
}

func New(uc UseCases, drafts repository.DraftRepository, opts ...Option) *ReturnWorkflow {
	w := &ReturnWorkflow{uc: uc, drafts: drafts, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start resumes the unfinished draft for the booking or opens a new one at
// photo capture.
func (w *ReturnWorkflow) Start(ctx context.Context, bookingID, receiptID string) (*domain.ReturnDraft, error) {
	logger.EnterMethod("ReturnWorkflow.Start", "bookingID", bookingID)

	v := validation.RequireNonEmpty("bookingId", bookingID, msgBookingRequired)
	if err := validation.Collect(v).Err(); err != nil {
		return nil, err
	}

	existing, err := w.drafts.GetActiveByBooking(ctx, bookingID)
	switch {
	case err == nil:
		if receiptID != "" && existing.ReceiptID == "" {
			existing.ReceiptID = receiptID
			if err := w.drafts.Save(ctx, existing); err != nil {
				return nil, err
			}
		}
		logger.ExitMethod("ReturnWorkflow.Start", "draftID", existing.ID, "resumed", true, "step", existing.Step)
		return existing, nil
	case !errors.Is(err, repository.ErrDraftNotFound):
		logger.ExitMethodWithError("ReturnWorkflow.Start", err, "bookingID", bookingID)
		return nil, err
	}

	draft := &domain.ReturnDraft{
		BookingID: bookingID,
		ReceiptID: receiptID,
		Step:      domain.StepPhotoCapture,
	}
	if err := w.drafts.Save(ctx, draft); err != nil {
		logger.ExitMethodWithError("ReturnWorkflow.Start", err, "bookingID", bookingID)
		return nil, err
	}
	logger.ExitMethod("ReturnWorkflow.Start", "draftID", draft.ID, "resumed", false)
	return draft, nil
}

func (w *ReturnWorkflow) Get(ctx context.Context, draftID string) (*domain.ReturnDraft, error) {
	return w.drafts.Get(ctx, draftID)
}

func (w *ReturnWorkflow) List(ctx context.Context) ([]domain.ReturnDraft, error) {
	return w.drafts.List(ctx)
}

// Abandon deletes an unfinished draft. No server call is made.
func (w *ReturnWorkflow) Abandon(ctx context.Context, draftID string) error {
	draft, err := w.drafts.Get(ctx, draftID)
	if err != nil {
		return err
	}
	if draft.Step == domain.StepFinalized {
		return fmt.Errorf("%w: abandon from %s", ErrInvalidTransition, draft.Step)
	}
	logger.Info("Return draft abandoned", "draftID", draftID, "bookingID", draft.BookingID, "step", draft.Step)
	return w.drafts.Delete(ctx, draftID)
}

// load fetches the draft and checks op may run from its current step.
func (w *ReturnWorkflow) load(ctx context.Context, draftID, op string) (*domain.ReturnDraft, error) {
	draft, err := w.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	for _, s := range allowedFrom[op] {
		if draft.Step == s {
			return draft, nil
		}
	}
	return nil, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, draft.Step)
}

func (w *ReturnWorkflow) advance(ctx context.Context, draft *domain.ReturnDraft, to domain.ReturnStep) error {
	from := draft.Step
	draft.Step = to
	if err := w.drafts.Save(ctx, draft); err != nil {
		draft.Step = from
		return err
	}
	logger.Info("Return step advanced", "draftID", draft.ID, "bookingID", draft.BookingID, "from", from, "to", to)
	return nil
}
