package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

func (s *Server) recordMeasurement(c echo.Context) error {
	potID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var req measurementRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, s.logger, err)
	}

	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return writeError(c, s.logger, common.NewValidationError("timestamp", "must be RFC3339"))
	}

	m, err := s.deps.Measurements.Record(requestContext(c), userID(c), potID, models.Measurement{
		Timestamp:    ts,
		SoilMoisture: req.SoilMoisture,
		Temperature:  req.Temperature,
		LightLevel:   req.LightLevel,
		Humidity:     req.Humidity,
		BatteryLevel: req.BatteryLevel,
	})
	if err != nil {
		return writeError(c, s.logger, err)
	}
	return c.JSON(http.StatusCreated, toMeasurement(m))
}

func (s *Server) listMeasurements(c echo.Context) error {
	potID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, s.logger, err)
	}

	list, err := s.deps.Measurements.List(requestContext(c), userID(c), potID)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	out := make([]measurementResponse, 0, len(list))
	for i := range list {
		out = append(out, toMeasurement(&list[i]))
	}
	return c.JSON(http.StatusOK, out)
}
