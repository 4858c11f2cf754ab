package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) createPot(c echo.Context) error {
	v, err := s.deps.Pots.Create(requestContext(c), userID(c))
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusCreated, toPot(v))
}

func (s *Server) listPots(c echo.Context) error {
	list, err := s.deps.Pots.List(requestContext(c), userID(c))
	if err != nil {
		return writeError(c, s.logger, err)
	}

	out := make([]potResponse, 0, len(list))
	for i := range list {
		out = append(out, toPot(&list[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getPot(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	v, err := s.deps.Pots.Get(requestContext(c), userID(c), id)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, toPot(v))
}
