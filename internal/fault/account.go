package fault

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/game"
)

var _ game.Gateway = (*Client)(nil)

type accountDTO struct {
	ID       flexInt `json:"id"`
	Username string  `json:"username"`
}

type avatarDTO struct {
	AvatarID  flexInt `json:"avatarId"`
	AvatarURI string  `json:"avatarURI"`
}

// SearchAccount looks a player up by username. When the search returns
// several accounts an exact (case-insensitive) username match wins,
// otherwise the first result is used.
func (c *Client) SearchAccount(ctx context.Context, name string) (*game.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NewValidationError("name", "username cannot be empty")
	}

	var results []accountDTO
	if err := c.get(ctx, "searchUsers", "/searchUsers/"+url.PathEscape(name), &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperr.NewNotFoundError("account", name)
	}

	best := results[0]
	for _, r := range results {
		if strings.EqualFold(r.Username, name) {
			best = r
			break
		}
	}

	return &game.Account{
		ID:       int64(best.ID),
		Username: best.Username,
	}, nil
}

// GetAvatar retrieves the avatar url of an account
func (c *Client) GetAvatar(ctx context.Context, accountID int64) (string, error) {
	var avatar *avatarDTO
	if err := c.get(ctx, "userAvatar", fmt.Sprintf("/userAvatar/%d", accountID), &avatar); err != nil {
		return "", err
	}
	if avatar == nil || avatar.AvatarURI == "" {
		return "", apperr.NewNotFoundError("avatar", fmt.Sprint(accountID))
	}
	return avatar.AvatarURI, nil
}
