package workflow

import (
	"context"
	"fmt"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/repository"
	"evrental-staff-core/internal/validation"
)

// CapturePhotos uploads the return photos for AI verification and damage
// analysis. Retaking photos from manual inspection replaces the analysis.
func (w *ReturnWorkflow) CapturePhotos(ctx context.Context, draftID string, paths []string) (*domain.ReturnDraft, error) {
	draft, err := w.load(ctx, draftID, opCapturePhotos)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, validation.Collect(validation.RequireNonEmpty("returnImages", "", msgPhotosRequired)).Err()
	}

	resp, err := w.uc.Analyze.Execute(ctx, draft.BookingID, paths)
	analysis, err := domain.Reply(resp, err)
	if err != nil {
		return nil, fmt.Errorf("analyze return: %w", err)
	}

	draft.CapturedPhotos = append([]string(nil), paths...)
	draft.Analysis = analysis
	if err := w.advance(ctx, draft, domain.StepManualInspection); err != nil {
		return nil, err
	}
	return draft, nil
}

func (w *ReturnWorkflow) SubmitInspection(ctx context.Context, draftID string, in InspectionInput) (*domain.ReturnDraft, error) {
	draft, err := w.load(ctx, draftID, opInspection)
	if err != nil {
		return nil, err
	}
	inspection, err := w.inspection(in)
	if err != nil {
		return nil, err
	}

	draft.Inspection = inspection
	if err := w.advance(ctx, draft, domain.StepAdditionalFees); err != nil {
		return nil, err
	}
	return draft, nil
}

// SubmitAdditionalFees drops rows without a fee type, validates the rest and
// creates the return receipt. Submitting no populated rows sends an empty list.
func (w *ReturnWorkflow) SubmitAdditionalFees(ctx context.Context, draftID string, rows []domain.AdditionalFee) (*domain.ReturnDraft, error) {
	draft, err := w.load(ctx, draftID, opFees)
	if err != nil {
		return nil, err
	}
	fees := FilterFeeRows(rows)
	if err := validation.FeeRows(fees).Err(); err != nil {
		return nil, err
	}

	resp, err := w.uc.CreateReceipt.Execute(ctx, receiptInput(draft, draft.Inspection, fees))
	receipt, err := domain.Reply(resp, err)
	if err != nil {
		return nil, fmt.Errorf("create receipt: %w", err)
	}

	draft.AdditionalFees = fees
	draft.Receipt = receipt
	if receipt.ReceiptID != "" {
		draft.ReceiptID = receipt.ReceiptID
	}
	if err := w.advance(ctx, draft, domain.StepReceiptCreated); err != nil {
		return nil, err
	}
	return draft, nil
}

// LoadSummary fetches the settlement summary and stores it exactly as the
// server sent it.
func (w *ReturnWorkflow) LoadSummary(ctx context.Context, draftID string) (*domain.ReturnDraft, error) {
	draft, err := w.load(ctx, draftID, opSummary)
	if err != nil {
		return nil, err
	}
	if err := w.refreshSummary(ctx, draft); err != nil {
		return nil, err
	}
	if err := w.advance(ctx, draft, domain.StepSummary); err != nil {
		return nil, err
	}
	return draft, nil
}

// Finalize closes the return. A negative refund (the renter owes money) is
// not blocked here; the server decides.
func (w *ReturnWorkflow) Finalize(ctx context.Context, draftID string, renterConfirmed bool) (*domain.ReturnDraft, error) {
	draft, err := w.load(ctx, draftID, opFinalize)
	if err != nil {
		return nil, err
	}

	resp, err := w.uc.Finalize.Execute(ctx, draft.BookingID, renterConfirmed)
	result, err := domain.Reply(resp, err)
	if err != nil {
		return nil, fmt.Errorf("finalize return: %w", err)
	}

	draft.Finalized = result
	if err := w.advance(ctx, draft, domain.StepFinalized); err != nil {
		return nil, err
	}
	w.notify(ctx, draft)
	return draft, nil
}

// SwapVehicle records a vehicle swap against the current inspection and fees
// and reloads the resulting settlement.
func (w *ReturnWorkflow) SwapVehicle(ctx context.Context, draftID string, edit ReceiptEdit) (*domain.ReturnDraft, error) {
	draft, err := w.load(ctx, draftID, opSwap)
	if err != nil {
		return nil, err
	}
	inspection, fees, err := w.applyEdit(draft, edit)
	if err != nil {
		return nil, err
	}

	resp, err := w.uc.Swap.Execute(ctx, receiptInput(draft, inspection, fees))
	swap, err := domain.Reply(resp, err)
	if err != nil {
		return nil, fmt.Errorf("vehicle swap: %w", err)
	}

	draft.Inspection, draft.AdditionalFees = inspection, fees
	if swap.NewBookingID != "" {
		draft.BookingID = swap.NewBookingID
	}
	if swap.ReceiptID != "" {
		draft.ReceiptID = swap.ReceiptID
	}
	draft.Receipt = &domain.ReturnReceipt{
		ReceiptID:  draft.ReceiptID,
		BookingID:  draft.BookingID,
		Settlement: swap.Settlement,
		CreatedAt:  w.now(),
	}
	if err := w.refreshSummary(ctx, draft); err != nil {
		return nil, err
	}
	if err := w.advance(ctx, draft, domain.StepSummary); err != nil {
		return nil, err
	}
	return draft, nil
}

// UpdateReceipt edits the created receipt and reloads the settlement, since
// the update call returns no data.
func (w *ReturnWorkflow) UpdateReceipt(ctx context.Context, draftID string, edit ReceiptEdit) (*domain.ReturnDraft, error) {
	draft, err := w.load(ctx, draftID, opUpdate)
	if err != nil {
		return nil, err
	}
	inspection, fees, err := w.applyEdit(draft, edit)
	if err != nil {
		return nil, err
	}

	resp, err := w.uc.UpdateReceipt.Execute(ctx, receiptInput(draft, inspection, fees))
	if _, err := domain.Reply(resp, err); err != nil {
		return nil, fmt.Errorf("update receipt: %w", err)
	}

	draft.Inspection, draft.AdditionalFees = inspection, fees
	if err := w.refreshSummary(ctx, draft); err != nil {
		return nil, err
	}
	if err := w.advance(ctx, draft, domain.StepSummary); err != nil {
		return nil, err
	}
	return draft, nil
}

func (w *ReturnWorkflow) refreshSummary(ctx context.Context, draft *domain.ReturnDraft) error {
	resp, err := w.uc.Summary.Execute(ctx, draft.BookingID)
	summary, err := domain.Reply(resp, err)
	if err != nil {
		return fmt.Errorf("load summary: %w", err)
	}
	if !summary.Settlement.Consistent() {
		// shown as received; logged for the server team
		logger.Warn("Settlement snapshot does not add up",
			"bookingID", draft.BookingID,
			"totalAmount", summary.Settlement.TotalAmount,
			"depositAmount", summary.Settlement.DepositAmount,
			"refundAmount", summary.Settlement.RefundAmount)
	}
	draft.Summary = summary
	return nil
}

func (w *ReturnWorkflow) inspection(in InspectionInput) (*domain.Inspection, error) {
	odo, battery, res := validation.Inspection(in.EndOdometerKm, in.EndBatteryPercentage)
	if err := res.Err(); err != nil {
		return nil, err
	}
	at := in.ActualReturnAt
	if at.IsZero() {
		at = w.now()
	}
	return &domain.Inspection{
		EndOdometerKm:        odo,
		EndBatteryPercentage: battery,
		ChecklistImagePath:   in.ChecklistImagePath,
		Notes:                in.Notes,
		ActualReturnAt:       at,
	}, nil
}

func (w *ReturnWorkflow) applyEdit(draft *domain.ReturnDraft, edit ReceiptEdit) (*domain.Inspection, []domain.AdditionalFee, error) {
	inspection := draft.Inspection
	if edit.Inspection != nil {
		var err error
		if inspection, err = w.inspection(*edit.Inspection); err != nil {
			return nil, nil, err
		}
	}
	fees := draft.AdditionalFees
	if edit.AdditionalFees != nil {
		fees = FilterFeeRows(edit.AdditionalFees)
		if err := validation.FeeRows(fees).Err(); err != nil {
			return nil, nil, err
		}
	}
	if fees == nil {
		fees = []domain.AdditionalFee{}
	}
	return inspection, fees, nil
}

func (w *ReturnWorkflow) notify(ctx context.Context, draft *domain.ReturnDraft) {
	if w.notifier == nil {
		return
	}
	notice := domain.ReturnNotice{BookingID: draft.BookingID, Result: *draft.Finalized}
	if draft.Summary != nil {
		notice.RenterName = draft.Summary.RenterName
		notice.RenterEmail = draft.Summary.RenterEmail
		notice.Settlement = draft.Summary.Settlement
	}
	if draft.Finalized.RenterEmail != "" {
		notice.RenterEmail = draft.Finalized.RenterEmail
	}
	if draft.Finalized.RenterName != "" {
		notice.RenterName = draft.Finalized.RenterName
	}
	if notice.RenterEmail == "" {
		return
	}
	// the return is already closed server side; a failed email does not undo it
	if err := w.notifier.NotifyReturnFinalized(ctx, notice); err != nil {
		logger.Warn("Receipt notification failed", "bookingID", draft.BookingID, "error", err)
	}
}

func receiptInput(draft *domain.ReturnDraft, inspection *domain.Inspection, fees []domain.AdditionalFee) repository.ReceiptInput {
	in := repository.ReceiptInput{
		BookingID:       draft.BookingID,
		RentalReceiptID: draft.ReceiptID,
		ReturnImageURLs: []string{},
		AdditionalFees:  fees,
	}
	if draft.Analysis != nil && draft.Analysis.UploadedImageURLs != nil {
		in.ReturnImageURLs = draft.Analysis.UploadedImageURLs
	}
	if inspection != nil {
		in.ActualReturnAt = inspection.ActualReturnAt
		in.EndOdometerKm = inspection.EndOdometerKm
		in.EndBatteryPercentage = inspection.EndBatteryPercentage
		in.Notes = inspection.Notes
		in.ChecklistImagePath = inspection.ChecklistImagePath
	}
	return in
}
