package discord

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
)

// Bot wraps the Discord session used by the roll announcer.
type Bot struct {
	Session   *discordgo.Session
	ChannelID string
}

// Config holds the bot configuration
type Config struct {
	Token     string
	ChannelID string
}

// New creates a new Discord bot
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	// The announcer only posts; no message content or member intents needed
	s.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		Session:   s,
		ChannelID: cfg.ChannelID,
	}, nil
}

// Start opens the gateway connection
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord announcer is now running. Press CTRL-C to exit.")
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() {
	if err := b.Session.Close(); err != nil {
		slog.Warn("Error closing Discord session", "error", err)
	}
}

// WaitForSignal blocks until SIGINT or SIGTERM is received
func (b *Bot) WaitForSignal() {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", s.State.User.Username, "channel_id", b.ChannelID)
}
