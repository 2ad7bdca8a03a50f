// Command spotify-wrapper runs the wrapped API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/YixiongHao/spotify-wrapper/internal/db"
	"github.com/YixiongHao/spotify-wrapper/internal/llm"
	"github.com/YixiongHao/spotify-wrapper/internal/snapshot"
	"github.com/YixiongHao/spotify-wrapper/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "wrapped",
	})

	// Validate environment variables
	clientID := os.Getenv("SPOTIFY_ID")
	clientSecret := os.Getenv("SPOTIFY_SECRET")
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("please set SPOTIFY_ID and SPOTIFY_SECRET environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("please set DATABASE_URL environment variable")
	}

	ctx := context.Background()
	database, err := db.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	// Text generation is optional; without a key every description falls
	// back to the placeholder.
	var generator snapshot.Describer
	if cfg, err := llm.LoadConfig(); err == nil {
		generator = llm.NewClient(cfg)
	} else if errors.Is(err, llm.ErrMissingAPIKey) {
		logger.Warn("OPENAI_API_KEY not set, text generation disabled")
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:         os.Getenv("ADDR"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  os.Getenv("REDIRECT_URL"),
		Database:     database,
		Generator:    generator,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
