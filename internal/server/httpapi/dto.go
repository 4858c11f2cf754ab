package httpapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
	"github.com/dmitrijs2005/plantkeeper/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type linkRequest struct {
	PlantID int64 `json:"plantId"`
	PotID   int64 `json:"potId"`
}

type plantRequest struct {
	Name string `json:"name"`
}

type plantResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type potResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	PlantID   *int64    `json:"plantId,omitempty"`
	PlantName *string   `json:"plantName,omitempty"`
}

type measurementRequest struct {
	Timestamp    string  `json:"timestamp"`
	SoilMoisture float64 `json:"soilMoisture"`
	Temperature  float64 `json:"temperature"`
	LightLevel   float64 `json:"lightLevel"`
	Humidity     float64 `json:"humidity"`
	BatteryLevel float64 `json:"batteryLevel"`
}

type measurementResponse struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	SoilMoisture float64   `json:"soilMoisture"`
	Temperature  float64   `json:"temperature"`
	LightLevel   float64   `json:"lightLevel"`
	Humidity     float64   `json:"humidity"`
	BatteryLevel float64   `json:"batteryLevel"`
}

type photoResponse struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UploadURL string    `json:"uploadUrl,omitempty"`
	URL       string    `json:"url,omitempty"`
}

func toPlant(p *models.Plant) plantResponse {
	return plantResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func toPot(v *models.PotView) potResponse {
	return potResponse{ID: v.ID, CreatedAt: v.CreatedAt, PlantID: v.PlantID, PlantName: v.PlantName}
}

func toMeasurement(m *models.Measurement) measurementResponse {
	return measurementResponse{
		ID:           m.ID,
		Timestamp:    m.Timestamp,
		SoilMoisture: m.SoilMoisture,
		Temperature:  m.Temperature,
		LightLevel:   m.LightLevel,
		Humidity:     m.Humidity,
		BatteryLevel: m.BatteryLevel,
	}
}

func toPhoto(p *services.PhotoURL) photoResponse {
	return photoResponse{ID: p.ID, Status: string(p.Status), CreatedAt: p.CreatedAt, URL: p.URL}
}

// bind decodes the JSON body; malformed input is a validation error.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return common.NewValidationError("body", "malformed JSON")
	}
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}
