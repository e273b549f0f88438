package stats

import (
	"context"
	"log/slog"

	"github.com/flor3z/fault-bot/internal/game"
)

// LoadCatalog fetches the hero catalog once. A failed load is not fatal: the
// bot runs with an empty catalog and heroes render as game.UnknownHeroName.
func LoadCatalog(ctx context.Context, gateway game.Gateway) *game.Catalog {
	heroes, err := gateway.GetHeroCatalog(ctx)
	if err != nil {
		slog.Error("Failed to load hero catalog, hero names will be unknown", "error", err)
		return game.NewCatalog(nil)
	}

	catalog := game.NewCatalog(heroes)
	slog.Info("Loaded hero catalog", "heroes", catalog.Len())
	return catalog
}

// RefreshCatalog refetches the hero catalog and swaps it in. On failure, or
// when the listing comes back empty, the current catalog stays in place.
func (a *Aggregator) RefreshCatalog(ctx context.Context) {
	heroes, err := a.gateway.GetHeroCatalog(ctx)
	if err != nil {
		slog.Warn("Failed to refresh hero catalog", "error", err)
		return
	}
	if len(heroes) == 0 {
		slog.Warn("Hero catalog refresh returned no heroes")
		return
	}

	catalog := game.NewCatalog(heroes)
	previous := a.catalog.Swap(catalog)
	if previous.Len() != catalog.Len() {
		slog.Info("Hero catalog updated", "heroes", catalog.Len(), "previous", previous.Len())
	}
}
