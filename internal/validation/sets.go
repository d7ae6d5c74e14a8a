package validation

import (
	"fmt"
	"strings"

	"evrental-staff-core/internal/apperror"
	"evrental-staff-core/internal/domain"
)

const (
	usernameMin = 3
	usernameMax = 50
	passwordMin = 6
	passwordMax = 128

	// googleTokenMinChars is the shortest plausible id token once the
	// separators are removed. Real Google tokens are far longer.
	googleTokenMinChars = 100
)

// Login checks credentials. The username is trimmed for checking only; the
// password is checked exactly as typed. Only the first violated rule per
// field is reported.
func Login(username, password string) Result {
	return Collect(
		firstOf(
			RequireNonEmpty("username", username, MsgUsernameRequired),
			RequireLength("username", strings.TrimSpace(username), usernameMin, usernameMax, MsgUsernameTooShort, MsgUsernameTooLong),
		),
		firstOf(
			requireNonEmptyExact("password", password, MsgPasswordRequired),
			RequireLength("password", password, passwordMin, passwordMax, MsgPasswordTooShort, MsgPasswordTooLong),
		),
	)
}

// GoogleIDToken checks the token is JWT shaped: three non-empty dot separated
// segments and long enough to be real.
func GoogleIDToken(token string) Result {
	if token == "" {
		return Collect(violation("idToken", RuleNonEmpty, MsgGoogleTokenRequired))
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Collect(violation("idToken", RuleFormat, MsgGoogleTokenInvalid))
	}
	for _, p := range parts {
		if p == "" {
			return Collect(violation("idToken", RuleFormat, MsgGoogleTokenInvalid))
		}
	}
	if len(strings.Join(parts, "")) < googleTokenMinChars {
		return Collect(violation("idToken", RuleMinLength, MsgGoogleTokenInvalid))
	}
	return Result{OK: true}
}

// Inspection checks the manual inspection text fields and returns the parsed values.
func Inspection(odometer, battery string) (float64, float64, Result) {
	odo, odoOK := ParseNumber(odometer)
	bat, batOK := ParseNumber(battery)

	var odoV, batV *apperror.Violation
	switch {
	case strings.TrimSpace(odometer) == "":
		odoV = violation("endOdometerKm", RuleNonEmpty, MsgOdometerRequired)
	case !odoOK:
		odoV = violation("endOdometerKm", RuleNumber, MsgOdometerNumber)
	case odo < 0:
		odoV = violation("endOdometerKm", RuleRange, MsgOdometerNegative)
	}
	switch {
	case strings.TrimSpace(battery) == "":
		batV = violation("endBatteryPercentage", RuleNonEmpty, MsgBatteryRequired)
	case !batOK:
		batV = violation("endBatteryPercentage", RuleNumber, MsgBatteryNumber)
	default:
		batV = RequireRange("endBatteryPercentage", bat, 0, 100, MsgBatteryRange)
	}
	return odo, bat, Collect(odoV, batV)
}

func Charging(start, end float64) Result {
	startV := RequireRange("startBatteryPercentage", start, 0, 100, MsgChargeStartRange)
	endV := RequireRange("endBatteryPercentage", end, 0, 100, MsgChargeEndRange)
	if startV != nil || endV != nil {
		return Collect(startV, endV)
	}
	return Collect(RequireGreaterThan("endBatteryPercentage", end, start, MsgChargeEndAbove))
}

// FeeRow checks one additional fee row; index is used in the field name.
func FeeRow(index int, fee domain.AdditionalFee) Result {
	prefix := fmt.Sprintf("additionalFees[%d]", index)
	return Collect(
		RequireNonEmpty(prefix+".feeType", string(fee.FeeType), MsgFeeTypeRequired),
		RequirePositive(prefix+".amount", float64(fee.Amount), MsgFeeAmount),
	)
}

func FeeRows(fees []domain.AdditionalFee) Result {
	rs := make([]Result, 0, len(fees))
	for i, f := range fees {
		rs = append(rs, FeeRow(i, f))
	}
	return Merge(rs...)
}

// DocumentFields is what both identity document forms share.
type DocumentFields struct {
	IDNumber     string
	DateOfBirth  string
	IssueDate    string
	ExpiryDate   string
	LicenseClass string
}

func CitizenID(d DocumentFields) Result {
	return Collect(
		RequireNonEmpty("idNumber", d.IDNumber, MsgIDNumberRequired),
		RequireDateOrder("issueDate", d.IssueDate, d.ExpiryDate, MsgIssueBeforeExpiry),
		RequireDateOrder("dateOfBirth", d.DateOfBirth, d.IssueDate, MsgBirthBeforeIssue),
	)
}

func DrivingLicense(d DocumentFields) Result {
	return Merge(
		CitizenID(d),
		Collect(RequireNonEmpty("licenseClass", d.LicenseClass, MsgLicenseClass)),
	)
}

func requireNonEmptyExact(field, value, message string) *apperror.Violation {
	if value == "" {
		return violation(field, RuleNonEmpty, message)
	}
	return nil
}

func firstOf(vs ...*apperror.Violation) *apperror.Violation {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}
