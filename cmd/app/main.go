package main

import (
	"flag"
	"log"
	"os"

	"github.com/kola-ootro/oura-ring-data-collector/internal/di"
	"github.com/kola-ootro/oura-ring-data-collector/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s data_dir=%s lookback_days=%d", cfg.Environment, cfg.Storage.DataDir, cfg.Oura.LookbackDays)
	if cfg.Oura.APIKey == "" {
		log.Printf("warning: OURA_API_KEY is not set, routes will report the missing credential")
	}

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
