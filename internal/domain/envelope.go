package domain

import "evrental-staff-core/internal/apperror"

// APIResponse is the uniform envelope every settlement service endpoint returns.
// Success is true iff Code is in [200, 300).
type APIResponse[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
	ErrorCode string `json:"errorCode,omitempty"`
	Data      T      `json:"data"`
}

// IsSuccessCode reports whether code is an HTTP-style success status.
func IsSuccessCode(code int) bool {
	return code >= 200 && code < 300
}

// Unwrap returns Data, or an *apperror.EnvelopeError when the envelope reports failure.
func (r *APIResponse[T]) Unwrap() (T, error) {
	var zero T
	if r == nil {
		return zero, &apperror.EnvelopeError{Message: "empty response"}
	}
	if !r.Success {
		return zero, &apperror.EnvelopeError{Code: r.Code, ErrorCode: r.ErrorCode, Message: r.Message}
	}
	return r.Data, nil
}

// Err is Unwrap for envelopes whose data is not needed.
func (r *APIResponse[T]) Err() error {
	_, err := r.Unwrap()
	return err
}

// Reply turns a call's envelope and error into a pointer to its data. Transport
// errors pass through unchanged; envelope failures become *apperror.EnvelopeError.
func Reply[T any](resp *APIResponse[T], err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	data, err := resp.Unwrap()
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// Empty is the data type of endpoints that return no payload.
type Empty struct{}
