package store

import (
	"time"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
)

// Store holds the four tabular collections for the session. It is loaded
// once at startup and read-only afterwards, so the engine can treat every
// query as a pure function of (question, period, store).
type Store struct {
	Collisions []models.Collision
	Requests   []models.ServiceRequest
	Stops      []models.TransitStop
	Weather    []models.WeatherDay
}

// New assembles a store from loaded collections.
func New(collisions []models.Collision, requests []models.ServiceRequest, stops []models.TransitStop, weather []models.WeatherDay) *Store {
	return &Store{
		Collisions: collisions,
		Requests:   requests,
		Stops:      stops,
		Weather:    weather,
	}
}

// DatasetBounds describes one collection for diagnostics.
type DatasetBounds struct {
	Rows   int        `json:"lignes"`
	First  *time.Time `json:"premiere_date,omitempty"`
	Anchor *time.Time `json:"date_ancre,omitempty"`
}

// Summary returns per-source row counts and date bounds. The anchor is the
// max date of each dated collection, the reference point for windowing.
func (s *Store) Summary() map[string]DatasetBounds {
	out := map[string]DatasetBounds{
		"collisions": boundsOf(len(s.Collisions), collisionDates(s.Collisions)),
		"req311":     boundsOf(len(s.Requests), requestDates(s.Requests)),
		"stm":        {Rows: len(s.Stops)},
		"meteo":      boundsOf(len(s.Weather), weatherDates(s.Weather)),
	}
	return out
}

func boundsOf(n int, dates []time.Time) DatasetBounds {
	b := DatasetBounds{Rows: n}
	for i := range dates {
		d := dates[i]
		if d.IsZero() {
			continue
		}
		if b.First == nil || d.Before(*b.First) {
			first := d
			b.First = &first
		}
		if b.Anchor == nil || d.After(*b.Anchor) {
			anchor := d
			b.Anchor = &anchor
		}
	}
	return b
}

func collisionDates(recs []models.Collision) []time.Time {
	out := make([]time.Time, len(recs))
	for i, r := range recs {
		out[i] = r.Date
	}
	return out
}

func requestDates(recs []models.ServiceRequest) []time.Time {
	out := make([]time.Time, len(recs))
	for i, r := range recs {
		out[i] = r.Date
	}
	return out
}

func weatherDates(recs []models.WeatherDay) []time.Time {
	out := make([]time.Time, len(recs))
	for i, r := range recs {
		out[i] = r.Date
	}
	return out
}
