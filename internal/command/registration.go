package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/flor3z/fault-bot/internal/apperr"
)

// Register links the caller to the named Fault account, replacing any
// previous link in this guild
func (h *Handler) Register(ctx context.Context, req Request) Reply {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return text(outcomeInvalid, msgNameRequired)
	}

	account, err := h.stats.ResolveAccount(ctx, req.GuildID, req.UserID, name)
	if err != nil {
		logLookupFailure("Failed to find Fault user", name, err)
		return text(outcomeNotFound, msgNameNotFound(name))
	}

	if _, err := h.registry.Upsert(ctx, req.GuildID, req.UserID, *account); err != nil {
		slog.Error("Failed to save registration", "guild", req.GuildID, "user", req.UserID, "error", err)
		return text(outcomeError, msgRegistryFailure)
	}

	slog.Info("Registered Fault user", "guild", req.GuildID, "user", req.UserID, "fault", account.Username)
	return text(outcomeOK, msgRegistered(account.Username, account.ID))
}

// Unregister forgets the caller's link in this guild
func (h *Handler) Unregister(ctx context.Context, req Request) Reply {
	reg, err := h.registry.Remove(ctx, req.GuildID, req.UserID)
	if apperr.IsNotFound(err) {
		return text(outcomeNotFound, msgNothingToRemove)
	}
	if err != nil {
		slog.Error("Failed to remove registration", "guild", req.GuildID, "user", req.UserID, "error", err)
		return text(outcomeError, msgRegistryFailure)
	}

	slog.Info("Unregistered Fault user", "guild", req.GuildID, "user", req.UserID, "fault", reg.Username)
	return text(outcomeOK, msgUnregistered(reg.Username))
}

// ShowRegistration tells the caller which account they are linked to
func (h *Handler) ShowRegistration(ctx context.Context, req Request) Reply {
	reg, err := h.registry.Lookup(ctx, req.GuildID, req.UserID)
	if apperr.IsNotFound(err) {
		return text(outcomeNotFound, msgNotRegistered)
	}
	if err != nil {
		slog.Error("Failed to read registration", "guild", req.GuildID, "user", req.UserID, "error", err)
		return text(outcomeError, msgRegistryFailure)
	}
	return text(outcomeOK, msgShowRegistration(reg.Username, reg.AccountID))
}

// List shows every registration in the guild
func (h *Handler) List(ctx context.Context, req Request) Reply {
	regs, err := h.registry.ListGuild(ctx, req.GuildID)
	if err != nil {
		slog.Error("Failed to list registrations", "guild", req.GuildID, "error", err)
		return text(outcomeError, msgRegistryFailure)
	}
	if len(regs) == 0 {
		return text(outcomeOK, msgEmptyGuild)
	}

	var sb strings.Builder
	sb.WriteString("**Registered Fault players:**\n\n")
	for idx, reg := range regs {
		sb.WriteString(fmt.Sprintf("%d. `%s` - <@%s>\n", idx+1, reg.Username, reg.UserID))
	}
	return text(outcomeOK, sb.String())
}

// Help describes the commands
func (h *Handler) Help(ctx context.Context, req Request) Reply {
	return text(outcomeOK, helpMessage)
}

func logLookupFailure(msg, name string, err error) {
	if apperr.IsNotFound(err) {
		slog.Info(msg, "name", name)
		return
	}
	slog.Error(msg, "name", name, "error", err)
}
