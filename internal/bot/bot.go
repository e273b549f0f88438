package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/flor3z/fault-bot/internal/command"
)

// Bot represents the Discord bot instance
type Bot struct {
	session  *discordgo.Session
	handler  *command.Handler
	guildID  string
	commands []*discordgo.ApplicationCommand
	ctx      context.Context
}

// New creates a new Bot instance. With a guildID the slash commands are
// registered to that guild only, which makes them available immediately.
func New(token, guildID string, handler *command.Handler) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		session: session,
		handler: handler,
		guildID: guildID,
		ctx:     context.Background(),
	}

	b.registerHandlers()

	return b, nil
}

// Start opens the Discord connection and registers slash commands
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	slog.Info("Connected to Discord", "user", b.session.State.User.Username)

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the bot
func (b *Bot) Stop() error {
	// Guild commands are only a development convenience
	if b.guildID != "" {
		b.removeCommands()
	}

	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// registerHandlers sets up Discord event handlers
func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Bot is ready", "guilds", len(r.Guilds))
	})
}
