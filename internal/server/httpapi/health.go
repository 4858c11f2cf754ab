package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) health(c echo.Context) error {
	if s.deps.DB == nil {
		return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
	}

	ctx, cancel := context.WithTimeout(requestContext(c), healthTimeout)
	defer cancel()

	if err := s.deps.DB.PingContext(ctx); err != nil {
		s.logger.Warn(ctx, "health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
