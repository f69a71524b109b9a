package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/klabast/wb-services/year-countdown/internal/app"
	"github.com/klabast/wb-services/year-countdown/internal/commands"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed static/index.html
var indexHTML []byte

func main() {
	// Check for subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "hash-secret":
			commands.HashSecret(os.Args[2:])
			return
		case "add":
			commands.AddEvent(os.Args[2:])
			return
		}
	}

	// Parse flags
	port := flag.Int("port", 0, "Port to listen on (overrides config)")
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Listen = fmt.Sprintf(":%d", *port)
	}

	// Load the hashed add-event secret (gate stays open if missing)
	gate, err := app.LoadSecretGate(cfg.SecretFile)
	if err != nil {
		log.Fatalf("Failed to load event secret: %v", err)
	}

	ctx := context.Background()
	store, err := app.Connect(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer store.Close()

	// Same statement as POST /api/init; a fresh deployment should serve an
	// empty list instead of a 500.
	if err := store.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize events table: %v", err)
	}

	srv := app.NewServer(cfg, store, gate, staticFiles, indexHTML)

	log.Printf("Starting year countdown for %d on %s", cfg.Year, cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
