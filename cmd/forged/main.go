package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/anthropics/slack-export-forge/internal/api"
	"github.com/anthropics/slack-export-forge/internal/conf"
	"github.com/anthropics/slack-export-forge/internal/data"
	"github.com/anthropics/slack-export-forge/internal/service"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := os.MkdirAll(cfg.Server.WorkDir, 0755); err != nil {
		log.Fatalf("Failed to create work directory: %v", err)
	}

	runRepo, err := data.NewRunRepo(cfg.Runs.DBPath)
	if err != nil {
		log.Fatalf("Failed to open run history: %v", err)
	}
	defer runRepo.Close()
	log.Printf("[Forge] Run history DB: %s", cfg.Runs.DBPath)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	exportSvc := service.NewExportService(rng)

	server := api.NewServer(exportSvc, runRepo, cfg.Server.WorkDir, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigCh:
		log.Printf("[Forge] Received %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			log.Printf("[Forge] Shutdown error: %v", err)
			os.Exit(1)
		}
		log.Println("[Forge] Server closed")
	}
}
