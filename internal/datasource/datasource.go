// Package datasource translates typed requests into exactly one settlement
// service call each and normalizes the reply into a domain.APIResponse.
// Transport errors are returned unchanged; envelope failures are returned as
// an envelope with Success=false and left for the caller to inspect.
package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/transport"
)

var ErrMissingID = errors.New("identifier is required")

// Doer is the part of transport.Client the data sources use.
type Doer interface {
	DoJSON(ctx context.Context, method, path string, body any) (*transport.Response, error)
	DoMultipart(ctx context.Context, method, path string, form *transport.Form) (*transport.Response, error)
}

// rawEnvelope mirrors the wire envelope; Success is a pointer so a missing
// field can be told apart from an explicit false.
type rawEnvelope[T any] struct {
	Success   *bool  `json:"success"`
	Message   string `json:"message"`
	Code      int    `json:"code"`
	ErrorCode string `json:"errorCode"`
	Data      T      `json:"data"`
}

// decode builds the envelope for a 2xx reply. Code is the HTTP status unless
// the body explicitly reports failure, in which case the body's code is kept
// (or 422 when the body claims a 2xx code alongside success=false), so that
// Success == IsSuccessCode(Code) always holds.
func decode[T any](resp *transport.Response) (*domain.APIResponse[T], error) {
	var env rawEnvelope[T]
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &env); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
	}

	out := &domain.APIResponse[T]{
		Success:   true,
		Message:   env.Message,
		Code:      resp.StatusCode,
		ErrorCode: env.ErrorCode,
		Data:      env.Data,
	}
	if env.Success != nil && !*env.Success {
		out.Success = false
		out.Code = env.Code
		if domain.IsSuccessCode(out.Code) || out.Code == 0 {
			out.Code = http.StatusUnprocessableEntity
		}
	}
	return out, nil
}

// call runs one request through fn and decodes it, logging the trace.
func call[T any](service, operation string, fn func() (*transport.Response, error), logArgs ...any) (*domain.APIResponse[T], error) {
	logger.ExternalServiceCall(service, operation, logArgs...)
	resp, err := fn()
	if err != nil {
		logger.ExternalServiceResult(service, operation, err, logArgs...)
		return nil, err
	}
	out, err := decode[T](resp)
	if err != nil {
		logger.ExternalServiceResult(service, operation, err, logArgs...)
		return nil, err
	}
	logger.ExternalServiceResult(service, operation, nil, append(logArgs, "success", out.Success, "code", out.Code)...)
	return out, nil
}

func requireID(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s: %w", name, ErrMissingID)
	}
	return nil
}
