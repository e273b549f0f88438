package layout

import (
	"fmt"
	"strings"

	"github.com/flor3z/fault-bot/internal/game"
)

// DefaultRankColor is used for titles missing from the rank table
const DefaultRankColor = 0x95A5A6

var rankColors = map[string]int{
	"Bronze":   0xD36210,
	"Silver":   0x808080,
	"Gold":     0xFBC02D,
	"Platinum": 0x0FB96D,
	"Diamond":  0x03A9F4,
	"Master":   0x9C27B0,
}

// RankColor returns the panel color of an elo title
func RankColor(title string) int {
	if c, ok := rankColors[title]; ok {
		return c
	}
	return DefaultRankColor
}

// RankIconURL returns the thumbnail for an elo title, or "" without a base url
func RankIconURL(baseURL, title string) string {
	if baseURL == "" || title == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s.png", strings.TrimRight(baseURL, "/"), title)
}

// Elo renders a player's rank panel
func Elo(account *game.Account, elo *game.Elo, avatarURL, thumbnailURL string) Layout {
	return Layout{
		Color: RankColor(elo.Title),
		Author: &Author{
			Name:    account.Username,
			IconURL: avatarURL,
		},
		ThumbnailURL: thumbnailURL,
		Fields: []Field{
			{Name: "Rank", Value: elo.Title, Inline: true},
			{Name: "MMR", Value: whole(elo.MMR), Inline: true},
			{Name: "Position", Value: fmt.Sprintf("%d", elo.Ranking), Inline: true},
		},
	}
}
