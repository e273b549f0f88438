// Package command is the transport-agnostic command layer. Each command takes
// a Request extracted by the chat adapter and produces a Reply: either a
// plain-text message or one or more layouts. Raw errors never reach a Reply.
package command

import (
	"context"
	"log/slog"

	"github.com/flor3z/fault-bot/internal/game"
	"github.com/flor3z/fault-bot/internal/layout"
	"github.com/flor3z/fault-bot/internal/metrics"
	"github.com/flor3z/fault-bot/internal/stats"
	"github.com/flor3z/fault-bot/internal/storage"
)

// Command names
const (
	Register         = "register"
	Unregister       = "unregister"
	ShowRegistration = "show-registration"
	Elo              = "elo"
	Match            = "match"
	Heroes           = "heroes"
	List             = "list"
	Help             = "help"
)

// unknownCommand is the metrics label for every unrecognized name
const unknownCommand = "unknown"

// Outcomes recorded in metrics
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// Request is one invocation coming from the chat platform
type Request struct {
	GuildID string
	UserID  string
	Name    string // explicit Fault username, optional except for register
	Sort    string // heroes sort key, optional
}

// Reply is what gets sent back to the channel
type Reply struct {
	Content string
	Layouts []layout.Layout

	outcome string
}

func text(outcome, content string) Reply {
	return Reply{Content: content, outcome: outcome}
}

// Registry is the registry surface the command layer uses
type Registry interface {
	Upsert(ctx context.Context, guildID, userID string, account game.Account) (*storage.Registration, error)
	Remove(ctx context.Context, guildID, userID string) (*storage.Registration, error)
	ListGuild(ctx context.Context, guildID string) ([]*storage.Registration, error)
	stats.Registry
}

// Handler wires commands to the registry, aggregator and layouts
type Handler struct {
	registry        Registry
	stats           *stats.Aggregator
	rankIconBaseURL string
}

// NewHandler creates a command handler
func NewHandler(registry Registry, aggregator *stats.Aggregator, rankIconBaseURL string) *Handler {
	return &Handler{
		registry:        registry,
		stats:           aggregator,
		rankIconBaseURL: rankIconBaseURL,
	}
}

// Handle runs the named command
func (h *Handler) Handle(ctx context.Context, name string, req Request) Reply {
	var reply Reply
	switch name {
	case Register:
		reply = h.Register(ctx, req)
	case Unregister:
		reply = h.Unregister(ctx, req)
	case ShowRegistration:
		reply = h.ShowRegistration(ctx, req)
	case Elo:
		reply = h.Elo(ctx, req)
	case Match:
		reply = h.Match(ctx, req)
	case Heroes:
		reply = h.Heroes(ctx, req)
	case List:
		reply = h.List(ctx, req)
	case Help:
		reply = h.Help(ctx, req)
	default:
		slog.Warn("Unknown command", "command", name)
		reply = text(outcomeInvalid, "Unknown command. Use /help to see what I can do.")
		name = unknownCommand
	}

	metrics.CommandsTotal.WithLabelValues(name, reply.outcome).Inc()
	return reply
}
