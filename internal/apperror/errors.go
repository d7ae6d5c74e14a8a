// Package apperror holds the error taxonomy shared by every layer of the
// staff client: transport failures, non-2xx replies, envelope failures,
// client-side validation failures and unverified accounts.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes the settlement service may put in the envelope's errorCode field.
const (
	CodeUnverifiedEmail    = "UNVERIFIED_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountLocked      = "ACCOUNT_LOCKED"
	CodeValidation         = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
)

// TransportError is a failure before any HTTP reply was read: DNS, refused
// connection, timeout, cancelled context.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx reply. When the body was an envelope its message and
// errorCode are kept so callers can classify without string matching.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	ErrorCode  string
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// EnvelopeError is a well-formed envelope with success=false.
type EnvelopeError struct {
	Code      int
	ErrorCode string
	Message   string
}

func (e *EnvelopeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with code %d", e.Code)
	}
	return e.Message
}

// Violation is one failed validation rule.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned before any network call when input breaks a
// client-side rule. Error() is the message of the first violation.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid input"
	}
	return e.Violations[0].Message
}

// Fields lists the fields that failed, in rule order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// UnverifiedAccountError tells the caller to start OTP verification for the account.
type UnverifiedAccountError struct {
	Username string
	Err      error
}

func (e *UnverifiedAccountError) Error() string {
	return fmt.Sprintf("account %q is not verified: %v", e.Username, e.Err)
}

func (e *UnverifiedAccountError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode extracts an HTTP-style status from err, or 0 when it has none.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	var ee *EnvelopeError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 0
}

// UserMessage is the text a front end shows for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var ee *EnvelopeError
	if errors.As(err, &ee) && ee.Message != "" {
		return ee.Message
	}
	var he *HTTPError
	if errors.As(err, &he) && he.Message != "" {
		return he.Message
	}
	if IsTransport(err) {
		return "Không thể kết nối tới máy chủ. Vui lòng thử lại."
	}
	return strings.TrimSpace(err.Error())
}
