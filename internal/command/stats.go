package command

import (
	"context"
	"log/slog"
	"strings"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/game"
	"github.com/flor3z/fault-bot/internal/layout"
)

// resolve finds the target account or returns the reply explaining why not
func (h *Handler) resolve(ctx context.Context, req Request) (*game.Account, *Reply) {
	name := strings.TrimSpace(req.Name)

	account, err := h.stats.ResolveAccount(ctx, req.GuildID, req.UserID, name)
	if err == nil {
		return account, nil
	}

	var reply Reply
	switch {
	case name != "":
		logLookupFailure("Failed to find Fault user", name, err)
		reply = text(outcomeNotFound, msgNameNotFound(name))
	case apperr.IsNotFound(err):
		slog.Info("No registration for user", "guild", req.GuildID, "user", req.UserID)
		reply = text(outcomeNotFound, msgNotRegistered)
	default:
		slog.Error("Failed to read registration", "guild", req.GuildID, "user", req.UserID, "error", err)
		reply = text(outcomeError, msgRegistryFailure)
	}
	return nil, &reply
}

// Elo shows rank, MMR and position
func (h *Handler) Elo(ctx context.Context, req Request) Reply {
	account, failure := h.resolve(ctx, req)
	if failure != nil {
		return *failure
	}

	elo, err := h.stats.FetchElo(ctx, account)
	if err != nil {
		logLookupFailure("Failed to get elo", account.Username, err)
		return text(outcomeNotFound, msgNoElo(account.Username))
	}

	avatar := h.stats.FetchAvatar(ctx, account)
	panel := layout.Elo(account, elo, avatar, layout.RankIconURL(h.rankIconBaseURL, elo.Title))
	return Reply{Layouts: []layout.Layout{panel}, outcome: outcomeOK}
}

// Match shows the latest match split into winner and loser panels
func (h *Handler) Match(ctx context.Context, req Request) Reply {
	account, failure := h.resolve(ctx, req)
	if failure != nil {
		return *failure
	}

	match, err := h.stats.FetchLatestMatch(ctx, account)
	if err != nil {
		logLookupFailure("Failed to get latest match", account.Username, err)
		return text(outcomeNotFound, msgNoMatch(account.Username))
	}

	return Reply{Layouts: layout.Match(match, h.stats.Catalog(), account.ID), outcome: outcomeOK}
}

// Heroes shows per-hero statistics sorted by the requested key
func (h *Handler) Heroes(ctx context.Context, req Request) Reply {
	key, err := layout.ParseSortKey(req.Sort)
	if err != nil {
		return text(outcomeInvalid, msgBadSort(req.Sort))
	}

	account, failure := h.resolve(ctx, req)
	if failure != nil {
		return *failure
	}

	heroStats, err := h.stats.FetchHeroStats(ctx, account)
	if err != nil {
		logLookupFailure("Failed to get hero stats", account.Username, err)
		return text(outcomeNotFound, msgNoHeroes(account.Username))
	}

	return Reply{Layouts: []layout.Layout{layout.HeroLeaderboard(heroStats, key, account.Username)}, outcome: outcomeOK}
}
