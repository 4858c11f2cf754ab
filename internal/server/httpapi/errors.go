package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/logging"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrUserAlreadyExists),
		errors.Is(err, common.ErrAlreadyLinked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as JSON. Internal errors are logged with their
// cause and answered with a generic body.
func writeError(c echo.Context, log logging.Logger, err error) error {
	status := statusFor(err)

	body := errorResponse{}
	switch status {
	case http.StatusBadRequest:
		var ve *common.ValidationError
		if errors.As(err, &ve) {
			body.Error = ve.Error()
			body.Field = ve.Field
		} else {
			body.Error = "invalid request"
		}
	case http.StatusUnauthorized:
		if errors.Is(err, common.ErrInvalidCredentials) {
			body.Error = common.ErrInvalidCredentials.Error()
		} else {
			body.Error = common.ErrorUnauthorized.Error()
		}
	case http.StatusNotFound:
		body.Error = common.ErrorNotFound.Error()
	case http.StatusConflict:
		if errors.Is(err, common.ErrAlreadyLinked) {
			body.Error = common.ErrAlreadyLinked.Error()
		} else {
			body.Error = common.ErrUserAlreadyExists.Error()
		}
	default:
		log.Error(c.Request().Context(), "request failed", "error", err, "path", c.Path())
		body.Error = common.ErrorInternal.Error()
	}

	return c.JSON(status, body)
}

// handleEchoError renders errors raised by echo itself (unknown route,
// wrong method, panics caught by Recover) in the same JSON shape.
func (s *Server) handleEchoError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			s.logger.Error(c.Request().Context(), "request failed", "error", err)
		}
		_ = c.JSON(he.Code, errorResponse{Error: http.StatusText(he.Code)})
		return
	}

	_ = writeError(c, s.logger, err)
}
