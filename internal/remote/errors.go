package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/thenoetrevino/scope/internal/apperr"
)

// classifyTransport maps a failed round trip to an error kind. Timeouts and
// transport failures mean the remote store is unreachable; a caller
// cancellation is not a connectivity problem.
func classifyTransport(err error) error {
	if errors.Is(err, context.Canceled) {
		return apperr.Wrap(apperr.KindRemote, err, "request cancelled")
	}
	return apperr.Wrap(apperr.KindConnectivity, err, "remote store unreachable")
}

// classifyStatus maps an error response to an error kind.
func classifyStatus(status int, body ErrorDTO) error {
	msg := body.Error
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return apperr.New(apperr.KindConnectivity, fmt.Sprintf("remote store unavailable (%d): %s", status, msg))
	case http.StatusUnauthorized:
		return apperr.New(apperr.KindAuth, msg)
	case http.StatusConflict:
		return apperr.New(apperr.KindDuplicateKey, msg)
	case http.StatusBadRequest:
		return apperr.Validation(body.Field, msg)
	case http.StatusNotFound:
		return apperr.New(apperr.KindNotFound, msg)
	default:
		return apperr.New(apperr.KindRemote, fmt.Sprintf("remote error (%d): %s", status, msg))
	}
}
