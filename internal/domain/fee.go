package domain

type FeeType string

const (
	FeeTypeDamage      FeeType = "damage"
	FeeTypeCleaning    FeeType = "cleaning"
	FeeTypeLateReturn  FeeType = "late_return"
	FeeTypeCrossBranch FeeType = "cross_branch"
	FeeTypeExcessKm    FeeType = "excess_km"
	FeeTypeOther       FeeType = "other"
)

type AdditionalFee struct {
	ID          string  `json:"id,omitempty"`
	BookingID   string  `json:"bookingId,omitempty"`
	FeeType     FeeType `json:"feeType"`
	Amount      int64   `json:"amount"`
	Description string  `json:"description,omitempty"`
}

type CreateAdditionalFeeRequest struct {
	BookingID   string  `json:"bookingId"`
	FeeType     FeeType `json:"feeType"`
	Amount      int64   `json:"amount"`
	Description string  `json:"description,omitempty"`
}
