package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/remote"
)

// statusFor maps an error kind to the HTTP status the client classifies
// back into the same kind.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindImmutableColumn:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDuplicateKey, apperr.KindDuplicateAssociation:
		return http.StatusConflict
	case apperr.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse converts any handler error into a status and body.
func errorResponse(err error) (int, remote.ErrorDTO) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
		return he.Code, remote.ErrorDTO{Error: msg}
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		status := statusFor(ae.Kind)
		msg := ae.Message
		if status == http.StatusInternalServerError || msg == "" {
			msg = http.StatusText(status)
		}
		return status, remote.ErrorDTO{Error: msg, Field: ae.Field}
	}
	return http.StatusInternalServerError, remote.ErrorDTO{Error: http.StatusText(http.StatusInternalServerError)}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.Error("failed to write error response", "error", err)
	}
}

// bind decodes the request body into v.
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return apperr.Wrap(apperr.KindValidation, err, fmt.Sprintf("invalid request body: %v", bodyError(err)))
	}
	return nil
}

func bodyError(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}
