package fault

import (
	"context"
	"fmt"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/game"
)

type matchesDTO struct {
	Success bool       `json:"success"`
	Matches []matchDTO `json:"matches"`
}

type matchDTO struct {
	ID            flexInt     `json:"id"`
	Winner        flexInt     `json:"winner"`
	TimeLength    string      `json:"timeLength"`
	StartDateTime string      `json:"startDateTime"`
	Status        flexInt     `json:"status"`
	Players       []playerDTO `json:"players"`
}

type playerDTO struct {
	PlayerID    flexInt   `json:"playerId"`
	Team        flexInt   `json:"team"`
	HeroID      flexInt   `json:"heroId"`
	HeroLevel   flexInt   `json:"heroLevel"`
	Kills       flexInt   `json:"kills"`
	Deaths      flexInt   `json:"deaths"`
	Assists     flexInt   `json:"assists"`
	HeroDamage  flexInt   `json:"heroDamage"`
	DamageTaken flexInt   `json:"damageTaken"`
	Gold        flexInt   `json:"gold"`
	CS          flexInt   `json:"cs"`
	Username    string    `json:"username"`
	MMR         flexFloat `json:"mmr"`
	MMRChange   flexFloat `json:"mmrChange"`
}

// GetMatches retrieves the most recent matches of an account, newest first
func (c *Client) GetMatches(ctx context.Context, accountID int64, count int) ([]*game.Match, error) {
	if count <= 0 {
		count = 1
	}
	if count > 10 {
		count = 10
	}

	var dto *matchesDTO
	if err := c.get(ctx, "getMatches", fmt.Sprintf("/getMatches/%d/%d", accountID, count), &dto); err != nil {
		return nil, err
	}
	if dto == nil || !dto.Success || len(dto.Matches) == 0 {
		return nil, apperr.NewNotFoundError("matches", fmt.Sprint(accountID))
	}

	matches := make([]*game.Match, 0, len(dto.Matches))
	for _, m := range dto.Matches {
		match, err := m.toMatch()
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// toMatch validates team assignments and converts to the domain record
func (m matchDTO) toMatch() (*game.Match, error) {
	if m.Winner != 0 && m.Winner != 1 {
		return nil, apperr.NewValidationError("winner", fmt.Sprintf("match %d has winner team %d", m.ID, m.Winner))
	}

	match := &game.Match{
		ID:           int64(m.ID),
		WinnerTeam:   int(m.Winner),
		DurationText: m.TimeLength,
		Players:      make([]game.PlayerMatchStat, 0, len(m.Players)),
	}
	for _, p := range m.Players {
		if p.Team != 0 && p.Team != 1 {
			return nil, apperr.NewValidationError("team", fmt.Sprintf("player %s has team %d", p.Username, p.Team))
		}
		match.Players = append(match.Players, game.PlayerMatchStat{
			AccountID: int64(p.PlayerID),
			Username:  p.Username,
			Team:      int(p.Team),
			HeroID:    int(p.HeroID),
			HeroLevel: int(p.HeroLevel),
			Kills:     int(p.Kills),
			Deaths:    int(p.Deaths),
			Assists:   int(p.Assists),
			CS:        int(p.CS),
			MMR:       float64(p.MMR),
			MMRChange: float64(p.MMRChange),
		})
	}
	return match, nil
}
