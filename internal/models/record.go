package models

import "time"

// Collision represents a single road collision record.
// Severity is a weighted score derived at load time:
// fatalities*4 + severe injuries*3 + minor injuries*2, floored at 1.
type Collision struct {
	Date          time.Time `json:"date"`
	Hour          int       `json:"heure"` // 0-23
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Borough       string    `json:"quartier"`
	Intersection  string    `json:"intersection"`
	Severity      int       `json:"gravite_num"`
	RoadCondition string    `json:"condition_meteo"` // surface/weather label ("Enneigée", "Mouillée", ...)
	Pedestrian    bool      `json:"pieton"`
	Cyclist       bool      `json:"cycliste"`
}

// ServiceRequest represents a citizen 311 service request.
// DayTemperature is an ambient temperature proxy for the request's day;
// the 311 source has no real weather join key.
type ServiceRequest struct {
	Date           time.Time `json:"date"`
	Category       string    `json:"type_service"`
	Borough        string    `json:"quartier"`
	Status         string    `json:"statut"`
	DayTemperature float64   `json:"temperature_ce_jour"`
}

// TransitStop represents an STM stop with coarse line tagging.
type TransitStop struct {
	StopID    string  `json:"stop_id"`
	StopName  string  `json:"stop_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Line      string  `json:"ligne"`
}

// WeatherDay represents one day of weather observations.
type WeatherDay struct {
	Date            time.Time `json:"date"`
	TempMax         float64   `json:"temperature"`
	TempMin         float64   `json:"temperature_min"`
	PrecipitationMM float64   `json:"precipitation_mm"`
	SnowfallCM      float64   `json:"neige_cm"`
	Station         string    `json:"station"`
	Condition       string    `json:"condition"`
}
