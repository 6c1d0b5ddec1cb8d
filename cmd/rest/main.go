package main

import (
	"context"
	"log"

	"kb-assistant-be/internal/bootstrap"
	"kb-assistant-be/internal/config"
	"kb-assistant-be/internal/server"
	"kb-assistant-be/internal/tracer"
	"kb-assistant-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Indexer Service...")
		if err := container.IndexerService.Consume(context.Background()); err != nil {
			log.Printf("Background Indexer Error: %v", err)
		}
		if err := container.IndexerService.RequeueUnfinished(context.Background()); err != nil {
			log.Printf("Background Indexer Requeue Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
