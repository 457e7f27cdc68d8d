package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/To3Knee/RealmQuest_Go/internal/database"
	"github.com/To3Knee/RealmQuest_Go/internal/database/postgres"
	"github.com/To3Knee/RealmQuest_Go/internal/discord"
	"github.com/To3Knee/RealmQuest_Go/internal/feed"
)

// Default values for optional configuration
const (
	DefaultAPIURL = "http://localhost:8080"

	dbMaxConns    = 4
	dbMaxIdleTime = 5 * time.Minute
	dbMaxLifetime = 30 * time.Minute
)

// announcerConfig holds everything the announcer process needs.
type announcerConfig struct {
	Bot          discord.Config
	APIURL       string
	APIKey       string
	DBConnString string
	PollInterval time.Duration
	FetchLimit   int
}

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Setup logging
	setupLogger()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	// Create bot
	bot, err := discord.New(cfg.Bot)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	// The announcer keeps its watermark in the same postgres instance the
	// API writes to, under its own consumer key.
	dbPool, err := database.NewPool(cfg.DBConnString, dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := bot.Start(); err != nil {
		slog.Error("Bot failed to start", "error", err)
		os.Exit(1)
	}
	defer bot.Stop()

	source := discord.NewAPIClient(cfg.APIURL, cfg.APIKey)
	sink := discord.NewAnnouncer(bot.Session, cfg.Bot.ChannelID)
	marks := postgres.NewWatermarkStore(dbPool)

	consumer := fmt.Sprintf("discord:%s", cfg.Bot.ChannelID)
	watcher := feed.NewWatcher(consumer, source, sink, marks, cfg.PollInterval, cfg.FetchLimit)

	ctx, cancel := context.WithCancel(context.Background())
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Watcher stopped", "error", err)
		}
	}()

	bot.WaitForSignal()
	slog.Info("Shutdown signal received")

	cancel()
	<-watcherDone
	slog.Info("Announcer stopped")
}

// setupLogger configures structured logging to stdout.
func setupLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
}

// loadConfig loads and validates announcer configuration from environment
// variables. Returns error if required variables are missing.
func loadConfig() (announcerConfig, error) {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return announcerConfig{}, errors.New("DISCORD_TOKEN is required")
	}

	channelID := os.Getenv("DISCORD_ROLL_CHANNEL_ID")
	if channelID == "" {
		return announcerConfig{}, errors.New("DISCORD_ROLL_CHANNEL_ID is required")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	slog.Info("Configured API URL", "url", apiURL)

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		slog.Warn("API_KEY not set, announcer requests may fail")
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		return announcerConfig{}, errors.New("DATABASE_URL is required for watermark storage")
	}

	pollInterval := feed.DefaultPollInterval
	if raw := os.Getenv("FEED_POLL_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return announcerConfig{}, fmt.Errorf("invalid FEED_POLL_INTERVAL: %w", err)
		}
		pollInterval = parsed
	}

	fetchLimit := feed.DefaultFetchLimit
	if raw := os.Getenv("FEED_FETCH_LIMIT"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &fetchLimit); err != nil {
			return announcerConfig{}, fmt.Errorf("invalid FEED_FETCH_LIMIT: %w", err)
		}
	}

	return announcerConfig{
		Bot: discord.Config{
			Token:     token,
			ChannelID: channelID,
		},
		APIURL:       apiURL,
		APIKey:       apiKey,
		DBConnString: connString,
		PollInterval: pollInterval,
		FetchLimit:   fetchLimit,
	}, nil
}
