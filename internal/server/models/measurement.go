package models

import "time"

// Measurement is one sensor reading reported for a pot.
type Measurement struct {
	ID           int64
	PotID        int64
	Timestamp    time.Time
	SoilMoisture float64
	Temperature  float64
	LightLevel   float64
	Humidity     float64
	BatteryLevel float64
}
