package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/flor3z/fault-bot/internal/command"
	"github.com/flor3z/fault-bot/internal/layout"
)

// requestTimeout bounds one command including gateway retries
const requestTimeout = 20 * time.Second

const (
	optionName = "name"
	optionSort = "sort"
)

const msgGuildOnly = "This command only works inside a server."

func nameOption(description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optionName,
		Description: description,
		Required:    required,
	}
}

func sortChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(layout.SortKeys))
	for i, k := range layout.SortKeys {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  string(k),
			Value: string(k),
		}
	}
	return choices
}

// Slash command definitions
func commandDefinitions() []*discordgo.ApplicationCommand {
	guildOnly := false
	return []*discordgo.ApplicationCommand{
		{
			Name:         command.Register,
			Description:  "Link your Discord user to a Fault username",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				nameOption("Your Fault username", true),
			},
		},
		{
			Name:         command.Unregister,
			Description:  "Forget the Fault username linked to you",
			DMPermission: &guildOnly,
		},
		{
			Name:         command.ShowRegistration,
			Description:  "Show the Fault username linked to you",
			DMPermission: &guildOnly,
		},
		{
			Name:         command.Elo,
			Description:  "Show rank, MMR and leaderboard position",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				nameOption("Fault username, defaults to yours", false),
			},
		},
		{
			Name:         command.Match,
			Description:  "Show the most recent match",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				nameOption("Fault username, defaults to yours", false),
			},
		},
		{
			Name:         command.Heroes,
			Description:  "Show per-hero statistics",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				nameOption("Fault username, defaults to yours", false),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionSort,
					Description: "Sort order, defaults to games",
					Choices:     sortChoices(),
				},
			},
		},
		{
			Name:         command.List,
			Description:  "List all registered players in this server",
			DMPermission: &guildOnly,
		},
		{
			Name:        command.Help,
			Description: "Show what this bot can do",
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	slog.Info("Registering slash commands", "guild", b.guildID)

	definitions := commandDefinitions()
	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, definitions)
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.commands = registered
	slog.Info("Slash commands registered", "count", len(registered))
	return nil
}

// removeCommands removes all registered slash commands
func (b *Bot) removeCommands() {
	for _, cmd := range b.commands {
		err := b.session.ApplicationCommandDelete(b.session.State.User.ID, b.guildID, cmd.ID)
		if err != nil {
			slog.Error("Failed to remove command", "name", cmd.Name, "error", err)
		}
	}
}

// handleInteraction processes slash command interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	req := requestFrom(i)
	slog.Debug("Received command", "command", name, "guild", req.GuildID, "user", req.UserID)

	if req.GuildID == "" && name != command.Help {
		respondWithMessage(s, i, msgGuildOnly)
		return
	}

	// Respond immediately to avoid timeout
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to defer response", "command", name, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(b.ctx, requestTimeout)
	defer cancel()

	reply := b.handler.Handle(ctx, name, req)
	editResponse(s, i, reply)
}

// requestFrom extracts the caller and options of an interaction
func requestFrom(i *discordgo.InteractionCreate) command.Request {
	req := command.Request{GuildID: i.GuildID}

	switch {
	case i.Member != nil && i.Member.User != nil:
		req.UserID = i.Member.User.ID
	case i.User != nil:
		req.UserID = i.User.ID
	}

	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Type != discordgo.ApplicationCommandOptionString {
			continue
		}
		switch opt.Name {
		case optionName:
			req.Name = opt.StringValue()
		case optionSort:
			req.Sort = opt.StringValue()
		}
	}
	return req
}

// Helper functions

func respondWithMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		slog.Error("Failed to respond", "error", err)
	}
}

func editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, reply command.Reply) {
	edit := &discordgo.WebhookEdit{}
	if reply.Content != "" {
		edit.Content = &reply.Content
	}
	if len(reply.Layouts) > 0 {
		embeds := toEmbeds(reply.Layouts)
		edit.Embeds = &embeds
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
		slog.Error("Failed to edit response", "error", err)
	}
}
