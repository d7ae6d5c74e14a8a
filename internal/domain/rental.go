package domain

import "time"

// Settlement is the server-computed fee snapshot of a rental return. Amounts are VND.
// The client renders these numbers as received and never recomputes them.
type Settlement struct {
	BaseRentalFee       int64        `json:"baseRentalFee"`
	TotalChargingFee    int64        `json:"totalChargingFee"`
	TotalAdditionalFees int64        `json:"totalAdditionalFees"`
	Breakdown           FeeBreakdown `json:"additionalFeeBreakdown"`
	TotalAmount         int64        `json:"totalAmount"`
	DepositAmount       int64        `json:"depositAmount"`
	// RefundAmount is negative when the renter owes money.
	RefundAmount int64 `json:"refundAmount"`
}

type FeeBreakdown struct {
	Damage      int64 `json:"damageFee"`
	Cleaning    int64 `json:"cleaningFee"`
	LateReturn  int64 `json:"lateReturnFee"`
	CrossBranch int64 `json:"crossBranchFee"`
	ExcessKm    int64 `json:"excessKmFee"`
}

// Consistent reports whether the snapshot satisfies the server's own identities.
// It is a diagnostic only.
func (s Settlement) Consistent() bool {
	return s.TotalAmount == s.BaseRentalFee+s.TotalChargingFee+s.TotalAdditionalFees &&
		s.RefundAmount == s.DepositAmount-s.TotalAmount
}

// AmountOwed is what the renter still has to pay, zero when a refund is due.
func (s Settlement) AmountOwed() int64 {
	if s.RefundAmount < 0 {
		return -s.RefundAmount
	}
	return 0
}

type ReturnReceipt struct {
	ReceiptID  string     `json:"receiptId"`
	BookingID  string     `json:"bookingId"`
	Settlement Settlement `json:"settlement"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type VerificationResult struct {
	IsVerified        bool    `json:"isVerified"`
	Confidence        float64 `json:"confidence"`
	Reason            string  `json:"reason"`
	LicensePlateMatch bool    `json:"licensePlateMatch"`
}

type DamageSuggestion struct {
	Area         string `json:"area"`
	Severity     string `json:"severity"`
	Description  string `json:"description"`
	SuggestedFee int64  `json:"suggestedFee"`
}

type DamageResult struct {
	HasNewDamages bool               `json:"hasNewDamages"`
	Suggestions   []DamageSuggestion `json:"suggestions"`
}

type AnalyzeReturnResult struct {
	UploadedImageURLs  []string           `json:"uploadedImageUrls"`
	VerificationResult VerificationResult `json:"verificationResult"`
	DamageResult       DamageResult       `json:"damageResult"`
}

// ReturnSummary is the settlement summary screen payload.
type ReturnSummary struct {
	BookingID      string          `json:"bookingId"`
	ReceiptID      string          `json:"receiptId"`
	RenterName     string          `json:"renterName"`
	RenterEmail    string          `json:"renterEmail"`
	VehicleName    string          `json:"vehicleName"`
	LicensePlate   string          `json:"licensePlate"`
	StartOdometer  float64         `json:"startOdometerKm"`
	EndOdometer    float64         `json:"endOdometerKm"`
	StartBattery   float64         `json:"startBatteryPercentage"`
	EndBattery     float64         `json:"endBatteryPercentage"`
	ReturnImages   []string        `json:"returnImageUrls"`
	AdditionalFees []AdditionalFee `json:"additionalFees"`
	Settlement     Settlement      `json:"settlement"`
}

type FinalizeReturnResult struct {
	BookingID     string `json:"bookingId"`
	Status        string `json:"status"`
	RefundAmount  int64  `json:"refundAmount"`
	PaymentStatus string `json:"paymentStatus"`
	RenterEmail   string `json:"renterEmail,omitempty"`
	RenterName    string `json:"renterName,omitempty"`
}

type VehicleSwapResult struct {
	BookingID    string     `json:"bookingId"`
	NewBookingID string     `json:"newBookingId,omitempty"`
	NewVehicleID string     `json:"newVehicleId,omitempty"`
	ReceiptID    string     `json:"receiptId"`
	Settlement   Settlement `json:"settlement"`
}

// FilePart is a local file attached to a multipart request.
type FilePart struct {
	Field       string
	Path        string
	FileName    string
	ContentType string
}

// AnalyzeReturnRequest is the analyze-return call shape.
type AnalyzeReturnRequest struct {
	BookingID    string
	ReturnImages []FilePart
}

// ReceiptRequest is shared by create-receipt, vehicle-swap and update-receipt.
// ActualReturnDatetime is ignored by vehicle-swap.
type ReceiptRequest struct {
	BookingID            string
	RentalReceiptID      string
	ActualReturnDatetime time.Time
	EndOdometerKm        float64
	EndBatteryPercentage float64
	Notes                string
	ReturnImageURLs      []string
	AdditionalFees       []AdditionalFee
	ChecklistImage       *FilePart
}

type FinalizeReturnRequest struct {
	BookingID       string `json:"bookingId"`
	RenterConfirmed bool   `json:"renterConfirmed"`
}

// ReturnNotice is what the renter is told once a return is finalized.
type ReturnNotice struct {
	BookingID   string
	RenterName  string
	RenterEmail string
	Settlement  Settlement
	Result      FinalizeReturnResult
}
