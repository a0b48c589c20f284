package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"report-automation-be/internal/bootstrap"
	"report-automation-be/internal/config"
	"report-automation-be/internal/server"
	"report-automation-be/internal/tracer"
	"report-automation-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("Unable to create working folders: %v", err)
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to migrate schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	shutdownTracer := tracer.InitTracer(cfg.Tracing, container.Logger)
	defer shutdownTracer(context.Background())

	// 4. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
