package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/plantkeeper/internal/server/services"
)

func (s *Server) requestPhotoUpload(c echo.Context) error {
	plantID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	p, err := s.deps.Photos.RequestUpload(requestContext(c), userID(c), plantID)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	resp := toPhoto(p)
	resp.UploadURL, resp.URL = p.URL, ""
	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) completePhoto(c echo.Context) error {
	plantID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, s.logger, err)
	}
	photoID, err := pathID(c, "photoId")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	p, err := s.deps.Photos.Complete(requestContext(c), userID(c), plantID, photoID)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, toPhoto(&services.PhotoURL{Photo: *p}))
}

func (s *Server) listPhotos(c echo.Context) error {
	plantID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	list, err := s.deps.Photos.List(requestContext(c), userID(c), plantID)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	out := make([]photoResponse, 0, len(list))
	for i := range list {
		out = append(out, toPhoto(&list[i]))
	}
	return c.JSON(http.StatusOK, out)
}
