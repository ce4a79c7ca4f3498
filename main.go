package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/openshelf/catalog/internal/config"
	"github.com/openshelf/catalog/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// A .env file is optional; the environment wins either way.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
