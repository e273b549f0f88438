package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/flor3z/fault-bot/internal/game"
)

const registrationsBucket = "registrations"

// BoltStore keeps one nested bucket per guild. Mutations run inside a
// single bbolt update transaction.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens a BoltDB-backed registry at path
func NewBoltStore(path string) (*BoltStore, error) {
	if path == "" {
		return nil, fmt.Errorf("registry path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open registry db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(registrationsBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create registry bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying BoltDB database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Upsert stores the account under the guild bucket
func (s *BoltStore) Upsert(ctx context.Context, guildID, userID string, account game.Account) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("marshal account: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		guild, err := tx.Bucket([]byte(registrationsBucket)).CreateBucketIfNotExists([]byte(guildID))
		if err != nil {
			return err
		}
		return guild.Put([]byte(userID), payload)
	})
	if err != nil {
		return nil, fmt.Errorf("put registration: %w", err)
	}
	return newRegistration(guildID, userID, account), nil
}

// Remove deletes a registration
func (s *BoltStore) Remove(ctx context.Context, guildID, userID string) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var account game.Account
	err := s.db.Update(func(tx *bbolt.Tx) error {
		guild := tx.Bucket([]byte(registrationsBucket)).Bucket([]byte(guildID))
		if guild == nil {
			return notFound(guildID, userID)
		}
		payload := guild.Get([]byte(userID))
		if payload == nil {
			return notFound(guildID, userID)
		}
		if err := json.Unmarshal(payload, &account); err != nil {
			return fmt.Errorf("unmarshal account: %w", err)
		}
		return guild.Delete([]byte(userID))
	})
	if err != nil {
		return nil, err
	}
	return newRegistration(guildID, userID, account), nil
}

// Lookup reads a registration
func (s *BoltStore) Lookup(ctx context.Context, guildID, userID string) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var account game.Account
	err := s.db.View(func(tx *bbolt.Tx) error {
		guild := tx.Bucket([]byte(registrationsBucket)).Bucket([]byte(guildID))
		if guild == nil {
			return notFound(guildID, userID)
		}
		payload := guild.Get([]byte(userID))
		if payload == nil {
			return notFound(guildID, userID)
		}
		return json.Unmarshal(payload, &account)
	})
	if err != nil {
		return nil, err
	}
	return newRegistration(guildID, userID, account), nil
}

// ListGuild returns every registration in the guild bucket
func (s *BoltStore) ListGuild(ctx context.Context, guildID string) ([]*Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	regs := []*Registration{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		guild := tx.Bucket([]byte(registrationsBucket)).Bucket([]byte(guildID))
		if guild == nil {
			return nil
		}
		return guild.ForEach(func(k, v []byte) error {
			var account game.Account
			if err := json.Unmarshal(v, &account); err != nil {
				return fmt.Errorf("unmarshal account %s: %w", k, err)
			}
			regs = append(regs, newRegistration(guildID, string(k), account))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sortRegistrations(regs)
	return regs, nil
}
