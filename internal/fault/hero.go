package fault

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/game"
)

type heroCountersDTO struct {
	Wins    flexInt `json:"wins"`
	Games   flexInt `json:"games"`
	Kills   flexInt `json:"kills"`
	Deaths  flexInt `json:"deaths"`
	Assists flexInt `json:"assists"`
}

type playerHeroStatsDTO struct {
	Heroes map[string]heroCountersDTO `json:"heroes"`
}

type heroCatalogDTO struct {
	Heroes map[string]struct {
		ID flexInt `json:"Id"`
	} `json:"heroes"`
}

// GetHeroStats retrieves per-hero counters of an account keyed by hero id
func (c *Client) GetHeroStats(ctx context.Context, accountID int64) (map[int]game.HeroCounters, error) {
	var dto *playerHeroStatsDTO
	if err := c.get(ctx, "getPlayerHeroStats", fmt.Sprintf("/getPlayerHeroStats/%d", accountID), &dto); err != nil {
		return nil, err
	}
	if dto == nil || len(dto.Heroes) == 0 {
		return nil, apperr.NewNotFoundError("hero stats", fmt.Sprint(accountID))
	}

	stats := make(map[int]game.HeroCounters, len(dto.Heroes))
	for key, h := range dto.Heroes {
		heroID, err := strconv.Atoi(key)
		if err != nil {
			slog.Warn("Skipping hero with non-numeric id", "accountID", accountID, "heroID", key)
			continue
		}
		stats[heroID] = game.HeroCounters{
			Wins:    int(h.Wins),
			Games:   int(h.Games),
			Kills:   int(h.Kills),
			Deaths:  int(h.Deaths),
			Assists: int(h.Assists),
		}
	}
	return stats, nil
}

// GetHeroCatalog retrieves every hero keyed by name
func (c *Client) GetHeroCatalog(ctx context.Context) (map[string]game.Hero, error) {
	var dto *heroCatalogDTO
	if err := c.get(ctx, "getStatsPerHero", "/getStatsPerHero", &dto); err != nil {
		return nil, err
	}
	if dto == nil || len(dto.Heroes) == 0 {
		return nil, apperr.NewNotFoundError("hero catalog", "all")
	}

	heroes := make(map[string]game.Hero, len(dto.Heroes))
	for name, h := range dto.Heroes {
		heroes[name] = game.Hero{ID: int(h.ID), Name: name}
	}
	return heroes, nil
}
