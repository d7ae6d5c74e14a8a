package mockapi

import (
	"encoding/json"
	"net/http"

	"evrental-staff-core/internal/apperror"
	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"
)

const (
	codeNotFound           = apperror.CodeNotFound
	codeValidation         = apperror.CodeValidation
	codeInvalidCredentials = apperror.CodeInvalidCredentials
	codeAccountLocked      = apperror.CodeAccountLocked
	codeUnverifiedEmail    = apperror.CodeUnverifiedEmail
	codeUnauthorized       = "UNAUTHORIZED"
	codeConflict           = "CONFLICT"
	codeInvalidOtp         = "INVALID_OTP"
	codeRenterNotConfirmed = "RENTER_NOT_CONFIRMED"
	codeInvitationExpired  = "INVITATION_EXPIRED"
)

// maxFailedLogins locks an account after this many wrong passwords in a row.
const maxFailedLogins = 5

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeOK(w http.ResponseWriter, status int, message string, data any) {
	if data == nil {
		data = domain.Empty{}
	}
	writeJSON(w, status, domain.APIResponse[any]{Success: true, Message: message, Code: status, Data: data})
}

func writeError(w http.ResponseWriter, status int, errorCode, message string) {
	writeJSON(w, status, domain.APIResponse[any]{Success: false, Message: message, Code: status, ErrorCode: errorCode})
}

// writeRejected reports a business rule failure the way the settlement
// service does: HTTP 200 with success=false and the real code in the body.
func writeRejected(w http.ResponseWriter, code int, errorCode, message string) {
	writeJSON(w, http.StatusOK, domain.APIResponse[any]{Success: false, Message: message, Code: code, ErrorCode: errorCode})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Dữ liệu không hợp lệ: "+err.Error())
		return false
	}
	return true
}
