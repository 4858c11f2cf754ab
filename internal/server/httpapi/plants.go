package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) createPlant(c echo.Context) error {
	var req plantRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, s.logger, err)
	}

	p, err := s.deps.Plants.Create(requestContext(c), userID(c), req.Name)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusCreated, toPlant(p))
}

func (s *Server) listPlants(c echo.Context) error {
	list, err := s.deps.Plants.List(requestContext(c), userID(c))
	if err != nil {
		return writeError(c, s.logger, err)
	}

	out := make([]plantResponse, 0, len(list))
	for i := range list {
		out = append(out, toPlant(&list[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getPlant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	p, err := s.deps.Plants.Get(requestContext(c), userID(c), id)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, toPlant(p))
}

func (s *Server) renamePlant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var req plantRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, s.logger, err)
	}

	p, err := s.deps.Plants.Rename(requestContext(c), userID(c), id, req.Name)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, toPlant(p))
}

func (s *Server) deletePlant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	if err := s.deps.Plants.Delete(requestContext(c), userID(c), id); err != nil {
		return writeError(c, s.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
