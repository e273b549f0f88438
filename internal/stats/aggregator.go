// Package stats resolves who a command is about and fetches what it asks for.
// Every fetch either returns a complete result or an error; absent data is
// always an apperr not-found error so callers never receive partial results.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/game"
	"github.com/flor3z/fault-bot/internal/storage"
)

// Registry is the part of storage.Store the aggregator reads
type Registry interface {
	Lookup(ctx context.Context, guildID, userID string) (*storage.Registration, error)
}

// Aggregator combines the registry, the game gateway and the hero catalog
type Aggregator struct {
	registry Registry
	gateway  game.Gateway
	catalog  atomic.Pointer[game.Catalog]
}

// NewAggregator creates an aggregator. The catalog is shared read-only and
// only ever replaced whole by RefreshCatalog.
func NewAggregator(registry Registry, gateway game.Gateway, catalog *game.Catalog) *Aggregator {
	a := &Aggregator{
		registry: registry,
		gateway:  gateway,
	}
	a.catalog.Store(catalog)
	return a
}

// Catalog returns the hero catalog the aggregator joins against
func (a *Aggregator) Catalog() *game.Catalog {
	return a.catalog.Load()
}

// ResolveAccount returns the account a command targets: the account named
// explicitly, or else the caller's registration in the guild.
func (a *Aggregator) ResolveAccount(ctx context.Context, guildID, userID, explicitName string) (*game.Account, error) {
	if name := strings.TrimSpace(explicitName); name != "" {
		account, err := a.gateway.SearchAccount(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("search account %q: %w", name, err)
		}
		return account, nil
	}

	reg, err := a.registry.Lookup(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup registration: %w", err)
	}
	account := reg.Account()
	return &account, nil
}

// FetchElo returns the rating of an account
func (a *Aggregator) FetchElo(ctx context.Context, account *game.Account) (*game.Elo, error) {
	elo, err := a.gateway.GetElo(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("get elo for %d: %w", account.ID, err)
	}
	return elo, nil
}

// FetchAvatar returns the avatar url of an account, or "" when it has none
// or it could not be fetched; an avatar is decoration, never a failure.
func (a *Aggregator) FetchAvatar(ctx context.Context, account *game.Account) string {
	uri, err := a.gateway.GetAvatar(ctx, account.ID)
	if err != nil {
		if !apperr.IsNotFound(err) {
			slog.Warn("Failed to fetch avatar", "accountID", account.ID, "error", err)
		}
		return ""
	}
	return uri
}

// FetchLatestMatch returns the most recent match of an account
func (a *Aggregator) FetchLatestMatch(ctx context.Context, account *game.Account) (*game.Match, error) {
	matches, err := a.gateway.GetMatches(ctx, account.ID, 1)
	if err != nil {
		return nil, fmt.Errorf("get matches for %d: %w", account.ID, err)
	}
	if len(matches) == 0 || matches[0] == nil {
		return nil, apperr.NewNotFoundError("match", fmt.Sprint(account.ID))
	}
	return matches[0], nil
}

// FetchHeroStats returns per-hero statistics ordered by hero id, with names
// from the catalog. Heroes newer than the catalog get game.UnknownHeroName.
func (a *Aggregator) FetchHeroStats(ctx context.Context, account *game.Account) ([]game.HeroStat, error) {
	counters, err := a.gateway.GetHeroStats(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("get hero stats for %d: %w", account.ID, err)
	}
	if len(counters) == 0 {
		return nil, apperr.NewNotFoundError("hero stats", fmt.Sprint(account.ID))
	}

	heroIDs := make([]int, 0, len(counters))
	for id := range counters {
		heroIDs = append(heroIDs, id)
	}
	sort.Ints(heroIDs)

	catalog := a.Catalog()
	stats := make([]game.HeroStat, 0, len(heroIDs))
	for _, id := range heroIDs {
		stats = append(stats, game.HeroStat{
			HeroID:       id,
			HeroName:     catalog.NameOrUnknown(id),
			HeroCounters: counters[id],
		})
	}
	return stats, nil
}
