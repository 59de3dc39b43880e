package authbridge

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorUnauthorized = "HEALTH_UNAUTHORIZED"
	ErrorTransport    = "HEALTH_TRANSPORT"
)

func dismissedError() error {
	return goerrors.New("authbridge: authorization surface closed without a result", goerrors.CategoryAuthz).
		WithCode(http.StatusForbidden).
		WithTextCode(ErrorUnauthorized)
}

func presenterError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal, "authbridge: present authorization request").
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorTransport)
}
