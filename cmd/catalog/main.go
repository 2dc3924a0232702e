package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"learnhub/internal/client"
	"learnhub/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	categoryID := flag.String("category", "", "Category ID; lists categories when empty")
	flag.Parse()

	logger := logger.New()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}
	cfg, err := client.LoadConfig()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conn, err := client.NewConnector(cfg.APIBaseURL, cfg.Timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create API connector")
	}
	api := client.NewCatalogAPI(conn, client.NewLogNotifier(logger), logger)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *categoryID == "" {
		categories, err := api.ListCategories(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to list categories")
		}
		enc.Encode(categories)
		return
	}

	result := api.GetCatalogPageData(ctx, *categoryID)
	if !result.Success {
		enc.Encode(result)
		os.Exit(1)
	}
	page, err := result.CatalogPage()
	if err != nil {
		logger.Fatal().Err(err).Msg("Unexpected catalog payload")
	}
	enc.Encode(page)
}
