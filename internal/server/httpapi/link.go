package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) link(c echo.Context) error {
	var req linkRequest
	if err := bind(c, &req); err != nil {
		s.recordLink("link", err)
		return writeError(c, s.logger, err)
	}

	err := s.deps.Links.Link(requestContext(c), userID(c), req.PlantID, req.PotID)
	s.recordLink("link", err)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) unlink(c echo.Context) error {
	var req linkRequest
	if err := bind(c, &req); err != nil {
		s.recordLink("unlink", err)
		return writeError(c, s.logger, err)
	}

	err := s.deps.Links.Unlink(requestContext(c), userID(c), req.PlantID, req.PotID)
	s.recordLink("unlink", err)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) recordLink(operation string, err error) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordLink(operation, outcome(err))
	}
}
