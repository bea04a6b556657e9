package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/models"
)

// DatasetRepository loads the four dataset tables into memory. The engine
// works on slices, so each loader runs once at startup.
type DatasetRepository struct {
	db *sql.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sql.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

const dateLayout = "2006-01-02"

func parseDate(s string) time.Time {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// LoadCollisions reads every collision record.
func (r *DatasetRepository) LoadCollisions() ([]models.Collision, error) {
	rows, err := r.db.Query(`
		SELECT date, heure, latitude, longitude, quartier, intersection,
		       gravite_num, condition_meteo, pieton, cycliste
		FROM collisions
		ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query collisions: %w", err)
	}
	defer rows.Close()

	var out []models.Collision
	for rows.Next() {
		var (
			date             string
			rec              models.Collision
			pieton, cycliste int
		)
		if err := rows.Scan(&date, &rec.Hour, &rec.Latitude, &rec.Longitude,
			&rec.Borough, &rec.Intersection, &rec.Severity, &rec.RoadCondition,
			&pieton, &cycliste); err != nil {
			return nil, fmt.Errorf("scan collision: %w", err)
		}
		rec.Date = parseDate(date)
		rec.Pedestrian = pieton != 0
		rec.Cyclist = cycliste != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LoadServiceRequests reads every 311 request record.
func (r *DatasetRepository) LoadServiceRequests() ([]models.ServiceRequest, error) {
	rows, err := r.db.Query(`
		SELECT date, type_service, quartier, statut, temperature_ce_jour
		FROM requetes_311
		ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query requetes_311: %w", err)
	}
	defer rows.Close()

	var out []models.ServiceRequest
	for rows.Next() {
		var (
			date string
			rec  models.ServiceRequest
		)
		if err := rows.Scan(&date, &rec.Category, &rec.Borough, &rec.Status, &rec.DayTemperature); err != nil {
			return nil, fmt.Errorf("scan requete 311: %w", err)
		}
		rec.Date = parseDate(date)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LoadTransitStops reads every STM stop.
func (r *DatasetRepository) LoadTransitStops() ([]models.TransitStop, error) {
	rows, err := r.db.Query(`
		SELECT stop_id, stop_name, latitude, longitude, ligne
		FROM arrets_stm
		ORDER BY stop_id`)
	if err != nil {
		return nil, fmt.Errorf("query arrets_stm: %w", err)
	}
	defer rows.Close()

	var out []models.TransitStop
	for rows.Next() {
		var rec models.TransitStop
		if err := rows.Scan(&rec.StopID, &rec.StopName, &rec.Latitude, &rec.Longitude, &rec.Line); err != nil {
			return nil, fmt.Errorf("scan arret stm: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LoadWeather reads the daily weather observations.
func (r *DatasetRepository) LoadWeather() ([]models.WeatherDay, error) {
	rows, err := r.db.Query(`
		SELECT date, temperature, temperature_min, precipitation_mm, neige_cm, station, condition
		FROM meteo
		ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("query meteo: %w", err)
	}
	defer rows.Close()

	var out []models.WeatherDay
	for rows.Next() {
		var (
			date string
			rec  models.WeatherDay
		)
		if err := rows.Scan(&date, &rec.TempMax, &rec.TempMin, &rec.PrecipitationMM,
			&rec.SnowfallCM, &rec.Station, &rec.Condition); err != nil {
			return nil, fmt.Errorf("scan meteo: %w", err)
		}
		rec.Date = parseDate(date)
		out = append(out, rec)
	}
	return out, rows.Err()
}
