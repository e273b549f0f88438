// Package layout turns statistics into chat-platform independent message
// panels. Everything here is a pure function of its inputs.
package layout

import (
	"fmt"
)

// NotAvailable is displayed instead of a ratio with a zero denominator
const NotAvailable = "N/A"

// MaxFields is the most fields a panel may carry
const MaxFields = 25

// Layout is one rich message panel
type Layout struct {
	Title        string
	Description  string
	Author       *Author
	ThumbnailURL string
	Color        int
	Fields       []Field
	Footer       string
}

// Author is the small header line of a panel
type Author struct {
	Name    string
	IconURL string
}

// Field is a named value inside a panel
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// ratio formats num/den with two decimals, or NotAvailable when den is zero
func ratio(num, den float64) string {
	if den == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", num/den)
}

// KDA formats (kills+assists)/deaths
func KDA(kills, deaths, assists int) string {
	return ratio(float64(kills+assists), float64(deaths))
}

// WinRate formats wins/games as a percentage
func WinRate(wins, games int) string {
	if games == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%%", float64(wins)/float64(games)*100)
}

// whole formats a rating with no decimals
func whole(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// signed formats a rating change with an explicit sign
func signed(v float64) string {
	s := fmt.Sprintf("%+.0f", v)
	if s == "-0" {
		return "+0"
	}
	return s
}
