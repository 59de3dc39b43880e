package core

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-health/authbridge"
	"github.com/goliatone/go-health/record"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorValidation       = record.ErrorValidation
	ErrorUnsupported      = record.ErrorUnsupported
	ErrorUnauthorized     = authbridge.ErrorUnauthorized
	ErrorTransport        = authbridge.ErrorTransport
	ErrorCancelled        = "HEALTH_CANCELLED"
	ErrorBadInput         = "HEALTH_BAD_INPUT"
	ErrorPlatformNotFound = "HEALTH_PLATFORM_NOT_FOUND"
	ErrorInternal         = "HEALTH_INTERNAL"
)

// serviceErrorMapper keeps rich errors and their envelope. Context errors
// become cancellations and anything else reported by a platform is treated as
// a transport failure with the cause wrapped.
func serviceErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureServiceErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ensureServiceErrorEnvelope(
			goerrors.Wrap(err, goerrors.CategoryOperation, "core: operation cancelled").
				WithTextCode(ErrorCancelled),
		)
	case strings.Contains(strings.ToLower(err.Error()), "platform") && strings.Contains(strings.ToLower(err.Error()), "not registered"):
		return newServiceError(err.Error(), goerrors.CategoryNotFound, ErrorPlatformNotFound)
	}

	return ensureServiceErrorEnvelope(
		goerrors.Wrap(err, goerrors.CategoryExternal, "core: platform call failed").
			WithTextCode(ErrorTransport),
	)
}

func newServiceError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureServiceErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureServiceErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = serviceHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultServiceTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultServiceTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryValidation:
		return ErrorValidation
	case goerrors.CategoryBadInput:
		return ErrorBadInput
	case goerrors.CategoryNotFound:
		return ErrorPlatformNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ErrorUnauthorized
	case goerrors.CategoryExternal:
		return ErrorTransport
	case goerrors.CategoryOperation:
		return ErrorUnsupported
	default:
		return ErrorInternal
	}
}

func serviceHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryOperation:
		return http.StatusUnprocessableEntity
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func badInputError(message string) error {
	return newServiceError(message, goerrors.CategoryBadInput, ErrorBadInput)
}

func platformNotFoundError(message string, platformID string) error {
	err := newServiceError(message, goerrors.CategoryNotFound, ErrorPlatformNotFound)
	if strings.TrimSpace(platformID) != "" {
		err = err.WithMetadata(map[string]any{"platform_id": platformID})
	}
	return err
}

func cancelledError(err error) error {
	return ensureServiceErrorEnvelope(
		goerrors.Wrap(err, goerrors.CategoryOperation, "core: operation cancelled").
			WithTextCode(ErrorCancelled),
	)
}

func IsValidation(err error) bool {
	return hasTextCode(err, ErrorValidation)
}

func IsUnsupported(err error) bool {
	return hasTextCode(err, ErrorUnsupported)
}

func IsUnauthorized(err error) bool {
	return hasTextCode(err, ErrorUnauthorized)
}

func IsTransport(err error) bool {
	return hasTextCode(err, ErrorTransport)
}

func IsCancelled(err error) bool {
	return hasTextCode(err, ErrorCancelled)
}

func IsBadInput(err error) bool {
	return hasTextCode(err, ErrorBadInput)
}

func IsPlatformNotFound(err error) bool {
	return hasTextCode(err, ErrorPlatformNotFound)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}
