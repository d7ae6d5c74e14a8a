package workflow

import (
	"strings"

	"evrental-staff-core/internal/domain"
)

// FilterFeeRows drops rows whose fee type is blank. The result is never nil.
func FilterFeeRows(rows []domain.AdditionalFee) []domain.AdditionalFee {
	out := make([]domain.AdditionalFee, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(string(r.FeeType)) == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
