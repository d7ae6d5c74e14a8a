package mockapi

import (
	"evrental-staff-core/internal/domain"
)

const (
	paymentRefundPending = "REFUND_PENDING"
	paymentRequired      = "PAYMENT_REQUIRED"
	paymentSettled       = "SETTLED"
)

// settle computes the settlement of a booking that has a receipt. Callers hold s.mu.
func settle(b *booking) domain.Settlement {
	base := b.Pricing.PerDay
	if cost, err := RentalCost(b.StartAt, b.Receipt.ActualReturnAt, b.Pricing); err == nil {
		base = cost.TotalCost
	}

	var charging int64
	for _, c := range b.Charging {
		charging += c.ChargingFee
	}

	var breakdown domain.FeeBreakdown
	var additional int64
	for _, f := range b.Fees {
		additional += f.Amount
		switch f.FeeType {
		case domain.FeeTypeDamage:
			breakdown.Damage += f.Amount
		case domain.FeeTypeCleaning:
			breakdown.Cleaning += f.Amount
		case domain.FeeTypeLateReturn:
			breakdown.LateReturn += f.Amount
		case domain.FeeTypeCrossBranch:
			breakdown.CrossBranch += f.Amount
		case domain.FeeTypeExcessKm:
			breakdown.ExcessKm += f.Amount
		}
	}

	total := base + charging + additional
	return domain.Settlement{
		BaseRentalFee:       base,
		TotalChargingFee:    charging,
		TotalAdditionalFees: additional,
		Breakdown:           breakdown,
		TotalAmount:         total,
		DepositAmount:       b.Pricing.DepositVND,
		RefundAmount:        b.Pricing.DepositVND - total,
	}
}

func paymentStatus(refund int64) string {
	switch {
	case refund > 0:
		return paymentRefundPending
	case refund < 0:
		return paymentRequired
	default:
		return paymentSettled
	}
}

func validFeeType(t domain.FeeType) bool {
	switch t {
	case domain.FeeTypeDamage, domain.FeeTypeCleaning, domain.FeeTypeLateReturn,
		domain.FeeTypeCrossBranch, domain.FeeTypeExcessKm, domain.FeeTypeOther:
		return true
	}
	return false
}

func chargingFee(kwh float64, p Pricing) int64 {
	if kwh <= 0 {
		return 0
	}
	return int64(kwh*float64(p.PerKwh) + 0.5)
}
