package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) register(c echo.Context) error {
	return s.issue(c, "register", s.deps.Auth.Register)
}

func (s *Server) login(c echo.Context) error {
	return s.issue(c, "login", s.deps.Auth.Login)
}

type issueFunc func(ctx context.Context, email, password string) (string, error)

func (s *Server) issue(c echo.Context, operation string, fn issueFunc) error {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		s.recordAuth(operation, err)
		return writeError(c, s.logger, err)
	}

	token, err := fn(requestContext(c), req.Email, req.Password)
	s.recordAuth(operation, err)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) recordAuth(operation string, err error) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordAuth(operation, outcome(err))
	}
}

// outcome is the metrics label for the result of an operation.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	switch statusFor(err) {
	case http.StatusBadRequest:
		return "invalid"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "error"
	}
}
