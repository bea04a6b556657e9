package main

import (
	"log"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/api"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/config"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/database"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/engine"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/llm"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/repository"
	"github.com/mobilite-mtl/mobilite-backend-go/internal/store"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	repo := repository.NewDatasetRepository(database.GetDB())
	collisions, err := repo.LoadCollisions()
	if err != nil {
		log.Fatal("Failed to load collisions:", err)
	}
	requests, err := repo.LoadServiceRequests()
	if err != nil {
		log.Fatal("Failed to load 311 requests:", err)
	}
	stops, err := repo.LoadTransitStops()
	if err != nil {
		log.Fatal("Failed to load STM stops:", err)
	}
	weather, err := repo.LoadWeather()
	if err != nil {
		log.Fatal("Failed to load weather:", err)
	}

	st := store.New(collisions, requests, stops, weather)
	log.Printf("Datasets loaded: %d collisions, %d requetes 311, %d arrets STM, %d jours meteo",
		len(collisions), len(requests), len(stops), len(weather))

	llmClient := llm.NewFromEnv()
	log.Printf("%s", llmClient.StatusLine())

	eng := engine.New(st, llmClient)

	r := api.SetupRouter(cfg, st, eng)
	log.Printf("Server starting on %s", cfg.Port)
	if err := r.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
