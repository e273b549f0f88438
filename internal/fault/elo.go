package fault

import (
	"context"
	"fmt"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/game"
)

type eloDTO struct {
	ID                   flexInt   `json:"id"`
	Username             string    `json:"username"`
	EloTitle             string    `json:"eloTitle"`
	MMR                  flexFloat `json:"MMR"`
	Ranking              flexInt   `json:"ranking"`
	PlacementGamesRemain flexInt   `json:"placementGamesRemain"`
}

// GetElo retrieves the MMR and elo title of an account
func (c *Client) GetElo(ctx context.Context, accountID int64) (*game.Elo, error) {
	var dto *eloDTO
	if err := c.get(ctx, "getEloData", fmt.Sprintf("/getEloData/%d", accountID), &dto); err != nil {
		return nil, err
	}
	if dto == nil || dto.EloTitle == "" {
		return nil, apperr.NewNotFoundError("elo", fmt.Sprint(accountID))
	}

	return &game.Elo{
		AccountID: int64(dto.ID),
		Username:  dto.Username,
		Title:     dto.EloTitle,
		MMR:       float64(dto.MMR),
		Ranking:   int(dto.Ranking),
	}, nil
}
