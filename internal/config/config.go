package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration, all of it environment-driven.
type Config struct {
	Port   string
	DBPath string

	// AuthJWTSecret enables bearer-token auth on the API when non-empty.
	AuthJWTSecret string

	// RateLimit is the per-IP request cap per minute.
	RateLimit int
}

// Load reads configuration from the environment. A .env file is honored
// when present so local runs do not need exported variables.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/mobilite.db"
	}

	return &Config{
		Port:          port,
		DBPath:        dbPath,
		AuthJWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		RateLimit:     120,
	}
}
