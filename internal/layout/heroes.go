package layout

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/game"
)

// SortKey orders the hero leaderboard
type SortKey string

const (
	SortByGames   SortKey = "games"
	SortByWins    SortKey = "wins"
	SortByKills   SortKey = "kills"
	SortByDeaths  SortKey = "deaths"
	SortByAssists SortKey = "assists"
	SortByName    SortKey = "name"
)

// SortKeys lists every valid key in display order
var SortKeys = []SortKey{SortByGames, SortByWins, SortByKills, SortByDeaths, SortByAssists, SortByName}

const leaderboardColor = 0x3498DB

// ParseSortKey validates a user supplied key; empty means games
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortByGames, nil
	}
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", apperr.NewValidationError("sort", fmt.Sprintf("unknown sort key %q", s))
}

// SortHeroes returns a stably sorted copy: descending by the key's counter,
// ascending for name.
func SortHeroes(stats []game.HeroStat, key SortKey) []game.HeroStat {
	sorted := slices.Clone(stats)
	if key == SortByName {
		slices.SortStableFunc(sorted, func(a, b game.HeroStat) int {
			return cmp.Compare(a.HeroName, b.HeroName)
		})
		return sorted
	}

	value := counter(key)
	slices.SortStableFunc(sorted, func(a, b game.HeroStat) int {
		return cmp.Compare(value(b), value(a))
	})
	return sorted
}

func counter(key SortKey) func(game.HeroStat) int {
	switch key {
	case SortByWins:
		return func(h game.HeroStat) int { return h.Wins }
	case SortByKills:
		return func(h game.HeroStat) int { return h.Kills }
	case SortByDeaths:
		return func(h game.HeroStat) int { return h.Deaths }
	case SortByAssists:
		return func(h game.HeroStat) int { return h.Assists }
	default:
		return func(h game.HeroStat) int { return h.Games }
	}
}

// HeroLeaderboard renders a player's per-hero statistics
func HeroLeaderboard(stats []game.HeroStat, key SortKey, displayName string) Layout {
	sorted := SortHeroes(stats, key)

	shown := sorted
	footer := ""
	if len(shown) > MaxFields {
		shown = shown[:MaxFields]
		footer = fmt.Sprintf("Showing %d of %d heroes", MaxFields, len(sorted))
	}

	fields := make([]Field, 0, len(shown))
	for _, h := range shown {
		fields = append(fields, Field{
			Name:  fmt.Sprintf("%s (%d games)", h.HeroName, h.Games),
			Value: fmt.Sprintf("%s win rate | %s total KDA", WinRate(h.Wins, h.Games), KDA(h.Kills, h.Deaths, h.Assists)),
		})
	}

	return Layout{
		Title:  fmt.Sprintf("Top Hero Statistics for %s (Sorted by %s)", displayName, key),
		Color:  leaderboardColor,
		Fields: fields,
		Footer: footer,
	}
}
