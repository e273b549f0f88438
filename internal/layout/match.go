package layout

import (
	"fmt"

	"github.com/flor3z/fault-bot/internal/game"
)

const (
	winColor  = 0x00DC04
	loseColor = 0xEF0000
)

// TeamAverageMMR returns the mean MMR of the players on team. The divisor is
// the real number of players on that team; ok is false for an empty team.
func TeamAverageMMR(players []game.PlayerMatchStat, team int) (avg float64, ok bool) {
	var sum float64
	count := 0
	for _, p := range players {
		if p.Team == team {
			sum += p.MMR
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// Match renders a match as two panels, winners first then losers. The
// requesting account's line is highlighted.
func Match(match *game.Match, catalog *game.Catalog, requestingAccountID int64) []Layout {
	winner := match.WinnerTeam
	loser := 1 - winner
	footer := fmt.Sprintf("%s - id:%d", match.DurationText, match.ID)

	return []Layout{
		teamPanel(match, catalog, requestingAccountID, winner, "Winner", winColor, footer),
		teamPanel(match, catalog, requestingAccountID, loser, "Loser", loseColor, footer),
	}
}

func teamPanel(match *game.Match, catalog *game.Catalog, requestingAccountID int64, team int, result string, color int, footer string) Layout {
	average := NotAvailable
	if avg, ok := TeamAverageMMR(match.Players, team); ok {
		average = whole(avg)
	}

	fields := []Field{}
	for _, p := range match.Players {
		if p.Team != team {
			continue
		}
		fields = append(fields, playerField(p, catalog, p.AccountID == requestingAccountID))
	}

	return Layout{
		Title:  fmt.Sprintf("Team %d - Average ELO %s", team, average),
		Author: &Author{Name: result},
		Color:  color,
		Fields: fields,
		Footer: footer,
	}
}

func playerField(p game.PlayerMatchStat, catalog *game.Catalog, highlight bool) Field {
	name := p.Username
	if highlight {
		name = "**" + name + "**"
	}

	return Field{
		Name: fmt.Sprintf("%s (Lv %d)", catalog.NameOrUnknown(p.HeroID), p.HeroLevel),
		Value: fmt.Sprintf("%s: ELO %s (%s) | KDA %d/%d/%d (%s) | CS %d",
			name, whole(p.MMR), signed(p.MMRChange),
			p.Kills, p.Deaths, p.Assists, KDA(p.Kills, p.Deaths, p.Assists), p.CS),
	}
}
