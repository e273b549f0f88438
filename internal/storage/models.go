package storage

import (
	"log/slog"

	"github.com/flor3z/fault-bot/internal/game"
)

// Registration links a Discord user in one guild to a Fault account.
// It is unique per (GuildID, UserID).
type Registration struct {
	GuildID   string
	UserID    string // Discord user ID
	AccountID int64
	Username  string // Fault username at registration time
}

// Account returns the denormalized Fault account of the registration
func (r *Registration) Account() game.Account {
	return game.Account{ID: r.AccountID, Username: r.Username}
}

func newRegistration(guildID, userID string, account game.Account) *Registration {
	return &Registration{
		GuildID:   guildID,
		UserID:    userID,
		AccountID: account.ID,
		Username:  account.Username,
	}
}

// document is the persisted shape of the file backend:
// guild ID -> Discord user ID -> account.
type document struct {
	Guild map[string]map[string]game.Account `json:"guild"`
}

func newDocument() *document {
	return &document{Guild: make(map[string]map[string]game.Account)}
}

// normalize repairs null guild buckets and drops null or id-less entries
// so a hand-edited document can never yield a nil map or a zero account
func (d *document) normalize(path string) {
	if d.Guild == nil {
		d.Guild = make(map[string]map[string]game.Account)
	}
	for guildID, users := range d.Guild {
		if users == nil {
			d.Guild[guildID] = make(map[string]game.Account)
			continue
		}
		for userID, account := range users {
			if account.ID == 0 {
				slog.Warn("Dropping invalid registry entry", "path", path, "guild", guildID, "user", userID)
				delete(users, userID)
			}
		}
	}
}
