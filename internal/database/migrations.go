package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Dataset table schemas. Dates are stored as TEXT in ISO form (YYYY-MM-DD);
// the loaders parse them into time.Time.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS collisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		heure INTEGER NOT NULL DEFAULT 0,
		latitude REAL NOT NULL DEFAULT 0,
		longitude REAL NOT NULL DEFAULT 0,
		quartier TEXT NOT NULL DEFAULT '',
		intersection TEXT NOT NULL DEFAULT '',
		gravite_num INTEGER NOT NULL DEFAULT 1,
		condition_meteo TEXT NOT NULL DEFAULT '',
		pieton INTEGER NOT NULL DEFAULT 0,
		cycliste INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_collisions_date ON collisions(date)`,

	`CREATE TABLE IF NOT EXISTS requetes_311 (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		type_service TEXT NOT NULL DEFAULT '',
		quartier TEXT NOT NULL DEFAULT '',
		statut TEXT NOT NULL DEFAULT '',
		temperature_ce_jour REAL NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_requetes_311_date ON requetes_311(date)`,

	`CREATE TABLE IF NOT EXISTS arrets_stm (
		stop_id TEXT PRIMARY KEY,
		stop_name TEXT NOT NULL DEFAULT '',
		latitude REAL NOT NULL DEFAULT 0,
		longitude REAL NOT NULL DEFAULT 0,
		ligne TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS meteo (
		date TEXT PRIMARY KEY,
		temperature REAL NOT NULL DEFAULT 0,
		temperature_min REAL NOT NULL DEFAULT 0,
		precipitation_mm REAL NOT NULL DEFAULT 0,
		neige_cm REAL NOT NULL DEFAULT 0,
		station TEXT NOT NULL DEFAULT '',
		condition TEXT NOT NULL DEFAULT ''
	)`,
}

// Migrate creates the dataset tables when they do not exist yet.
func Migrate() error {
	err := Transaction(func(tx *sql.Tx) error {
		for _, stmt := range migrations {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("Database schema up to date (%d statements)", len(migrations))
	return nil
}
