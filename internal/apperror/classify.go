package apperror

import (
	"errors"
	"strings"
)

type AuthErrorKind string

const (
	AuthErrorUnverified         AuthErrorKind = "unverified"
	AuthErrorInvalidCredentials AuthErrorKind = "invalid_credentials"
	AuthErrorLocked             AuthErrorKind = "locked"
	AuthErrorValidation         AuthErrorKind = "validation"
	AuthErrorNetwork            AuthErrorKind = "network"
	AuthErrorUnknown            AuthErrorKind = "unknown"
)

// unverifiedKeywords are matched case-insensitively against server messages
// that carry no errorCode.
var unverifiedKeywords = []string{
	"xác minh",
	"xác thực",
	"chưa kích hoạt",
	"chưa được kích hoạt",
	"not verified",
	"unverified",
	"verify your email",
}

var credentialKeywords = []string{
	"sai mật khẩu",
	"sai tên đăng nhập",
	"invalid credentials",
	"incorrect password",
}

// IsUnverifiedEmailError reports whether a server message says the account's
// email has not been verified yet.
func IsUnverifiedEmailError(message string) bool {
	return containsAny(strings.ToLower(message), unverifiedKeywords)
}

// ClassifyAuthError maps a login failure to a kind. Structured error codes win;
// message keywords are only a fallback for servers that send none.
func ClassifyAuthError(err error) AuthErrorKind {
	if err == nil {
		return AuthErrorUnknown
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return AuthErrorValidation
	}
	var ue *UnverifiedAccountError
	if errors.As(err, &ue) {
		return AuthErrorUnverified
	}
	if IsTransport(err) {
		return AuthErrorNetwork
	}

	code, message := "", err.Error()
	var ee *EnvelopeError
	var he *HTTPError
	switch {
	case errors.As(err, &ee):
		code, message = ee.ErrorCode, ee.Message
	case errors.As(err, &he):
		code, message = he.ErrorCode, he.Message
		if code == "" && he.StatusCode == 401 && !IsUnverifiedEmailError(message) {
			return AuthErrorInvalidCredentials
		}
	}

	switch code {
	case CodeUnverifiedEmail:
		return AuthErrorUnverified
	case CodeInvalidCredentials:
		return AuthErrorInvalidCredentials
	case CodeAccountLocked:
		return AuthErrorLocked
	case CodeValidation:
		return AuthErrorValidation
	}

	lower := strings.ToLower(message)
	switch {
	case IsUnverifiedEmailError(lower):
		return AuthErrorUnverified
	case containsAny(lower, credentialKeywords):
		return AuthErrorInvalidCredentials
	}
	return AuthErrorUnknown
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
