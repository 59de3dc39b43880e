package record

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorValidation  = "HEALTH_VALIDATION"
	ErrorUnsupported = "HEALTH_UNSUPPORTED"
)

func validationError(field, message string) error {
	return goerrors.NewValidation(
		fmt.Sprintf("record: invalid %s: %s", field, message),
		goerrors.FieldError{Field: field, Message: message},
	).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorValidation).
		WithSeverity(goerrors.SeverityError)
}

func unsupportedError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryOperation).
		WithCode(http.StatusUnprocessableEntity).
		WithTextCode(ErrorUnsupported)
	if len(metadata) > 0 {
		err = err.WithMetadata(metadata)
	}
	return err
}

// IsValidation reports whether err is a record validation failure.
func IsValidation(err error) bool {
	return hasTextCode(err, ErrorValidation)
}

// IsUnsupported reports whether err marks an operation with no implementation
// for the requested data type.
func IsUnsupported(err error) bool {
	return hasTextCode(err, ErrorUnsupported)
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
