package domain

import "time"

type ReturnStep string

const (
	StepPhotoCapture     ReturnStep = "photo_capture"
	StepManualInspection ReturnStep = "manual_inspection"
	StepAdditionalFees   ReturnStep = "additional_fees"
	StepReceiptCreated   ReturnStep = "receipt_created"
	StepSummary          ReturnStep = "summary"
	StepFinalized        ReturnStep = "finalized"
)

// Inspection is the manual checklist step: odometer, battery and the signed checklist photo.
type Inspection struct {
	EndOdometerKm        float64   `json:"endOdometerKm"`
	EndBatteryPercentage float64   `json:"endBatteryPercentage"`
	ChecklistImagePath   string    `json:"checklistImagePath,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	ActualReturnAt       time.Time `json:"actualReturnAt"`
}

// ReturnDraft is the persisted state of one staff return session.
type ReturnDraft struct {
	ID             string                `json:"id"`
	BookingID      string                `json:"bookingId"`
	ReceiptID      string                `json:"rentalReceiptId"`
	Step           ReturnStep            `json:"step"`
	CapturedPhotos []string              `json:"capturedPhotos,omitempty"`
	Analysis       *AnalyzeReturnResult  `json:"analysis,omitempty"`
	Inspection     *Inspection           `json:"inspection,omitempty"`
	AdditionalFees []AdditionalFee       `json:"additionalFees,omitempty"`
	Receipt        *ReturnReceipt        `json:"receipt,omitempty"`
	Summary        *ReturnSummary        `json:"summary,omitempty"`
	Finalized      *FinalizeReturnResult `json:"finalized,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// Settlement returns the most recent settlement snapshot the draft holds.
func (d *ReturnDraft) Settlement() (Settlement, bool) {
	if d.Summary != nil {
		return d.Summary.Settlement, true
	}
	if d.Receipt != nil {
		return d.Receipt.Settlement, true
	}
	return Settlement{}, false
}
