package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/flor3z/fault-bot/internal/layout"
)

// toEmbed converts a panel into a Discord embed
func toEmbed(l layout.Layout) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       l.Title,
		Description: l.Description,
		Color:       l.Color,
	}

	if l.Author != nil {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    l.Author.Name,
			IconURL: l.Author.IconURL,
		}
	}
	if l.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: l.ThumbnailURL}
	}
	if l.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: l.Footer}
	}

	for _, f := range l.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	return embed
}

func toEmbeds(layouts []layout.Layout) []*discordgo.MessageEmbed {
	embeds := make([]*discordgo.MessageEmbed, len(layouts))
	for i, l := range layouts {
		embeds[i] = toEmbed(l)
	}
	return embeds
}
