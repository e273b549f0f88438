package game

import (
	"context"
)

// Account is a player identity in the Fault statistics service
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Hero is an entry of the hero catalog
type Hero struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Elo holds a player's rating and tier
type Elo struct {
	AccountID int64
	Username  string
	Title     string // Bronze, Silver, Gold, Platinum, Diamond, Master, ...
	MMR       float64
	Ranking   int
}

// Match summarizes a single finished match
type Match struct {
	ID           int64
	WinnerTeam   int // 0 or 1
	DurationText string
	Players      []PlayerMatchStat
}

// PlayerMatchStat is one player's line in a match
type PlayerMatchStat struct {
	AccountID int64
	Username  string
	Team      int // 0 or 1
	HeroID    int
	HeroLevel int
	Kills     int
	Deaths    int
	Assists   int
	CS        int
	MMR       float64
	MMRChange float64
}

// HeroCounters are the raw per-hero totals returned for an account
type HeroCounters struct {
	Wins    int
	Games   int
	Kills   int
	Deaths  int
	Assists int
}

// HeroStat is HeroCounters joined with the hero catalog
type HeroStat struct {
	HeroID   int
	HeroName string
	HeroCounters
}

// Gateway is the contract of the external game statistics API.
// Every method returns an apperr not-found error when the upstream
// has no data, and an apperr unavailable error on transport failure.
type Gateway interface {
	// SearchAccount resolves a username to an account
	SearchAccount(ctx context.Context, name string) (*Account, error)

	// GetElo returns the rating of an account
	GetElo(ctx context.Context, accountID int64) (*Elo, error)

	// GetMatches returns up to count of the most recent matches, newest first
	GetMatches(ctx context.Context, accountID int64, count int) ([]*Match, error)

	// GetHeroStats returns per-hero counters keyed by hero id
	GetHeroStats(ctx context.Context, accountID int64) (map[int]HeroCounters, error)

	// GetHeroCatalog returns every known hero keyed by name
	GetHeroCatalog(ctx context.Context) (map[string]Hero, error)

	// GetAvatar returns the avatar image url of an account
	GetAvatar(ctx context.Context, accountID int64) (string, error)
}
