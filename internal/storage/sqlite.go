package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/flor3z/fault-bot/internal/game"
)

// SQLiteStore keeps one row per registration
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite registry
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("registry path is required")
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS registrations (
			guild_id VARCHAR(20) NOT NULL,
			user_id VARCHAR(20) NOT NULL,
			account_id INTEGER NOT NULL,
			username VARCHAR(50) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (guild_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_guild ON registrations(guild_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// Upsert creates or updates a registration
func (s *SQLiteStore) Upsert(ctx context.Context, guildID, userID string, account game.Account) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registrations (guild_id, user_id, account_id, username) VALUES (?, ?, ?, ?)
		 ON CONFLICT(guild_id, user_id) DO UPDATE SET
			account_id = excluded.account_id,
			username = excluded.username,
			updated_at = CURRENT_TIMESTAMP`,
		guildID, userID, account.ID, account.Username,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert registration: %w", err)
	}
	return newRegistration(guildID, userID, account), nil
}

// Remove deletes a registration and returns the removed row
func (s *SQLiteStore) Remove(ctx context.Context, guildID, userID string) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}

	var account game.Account
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM registrations WHERE guild_id = ? AND user_id = ? RETURNING account_id, username`,
		guildID, userID,
	).Scan(&account.ID, &account.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(guildID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete registration: %w", err)
	}
	return newRegistration(guildID, userID, account), nil
}

// Lookup finds a registration
func (s *SQLiteStore) Lookup(ctx context.Context, guildID, userID string) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}

	var account game.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT account_id, username FROM registrations WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	).Scan(&account.ID, &account.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(guildID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return newRegistration(guildID, userID, account), nil
}

// ListGuild returns all registrations in a guild
func (s *SQLiteStore) ListGuild(ctx context.Context, guildID string) ([]*Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, account_id, username FROM registrations WHERE guild_id = ?`,
		guildID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := []*Registration{}
	for rows.Next() {
		r := &Registration{GuildID: guildID}
		if err := rows.Scan(&r.UserID, &r.AccountID, &r.Username); err != nil {
			return nil, err
		}
		regs = append(regs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortRegistrations(regs)
	return regs, nil
}
