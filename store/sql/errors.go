package sqlstore

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-health/core"
)

func unsupportedError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryOperation).
		WithCode(http.StatusUnprocessableEntity).
		WithTextCode(core.ErrorUnsupported)
	if len(metadata) > 0 {
		err = err.WithMetadata(metadata)
	}
	return err
}

func validationError(field, message string) error {
	return goerrors.NewValidation(
		"sqlstore: invalid "+field+": "+message,
		goerrors.FieldError{Field: field, Message: message},
	).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ErrorValidation)
}
