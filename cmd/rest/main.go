package main

import (
	"context"
	"log"

	"admission-assistant-be/internal/bootstrap"
	"admission-assistant-be/internal/config"
	"admission-assistant-be/internal/server"
	"admission-assistant-be/internal/tracer"
	"admission-assistant-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Embedding consumer runs alongside the API.
	go func() {
		log.Println("Background: starting embedding consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
