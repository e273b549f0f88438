// Package storage persists the mapping from Discord users to Fault accounts,
// scoped per guild. Every backend serializes its read-modify-write cycles so
// concurrent commands in the same guild cannot lose updates.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/game"
	"github.com/flor3z/fault-bot/internal/metrics"
)

// Supported backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
)

// Store is the registry of Discord user -> Fault account links
type Store interface {
	// Upsert creates or overwrites the registration of a user in a guild
	Upsert(ctx context.Context, guildID, userID string, account game.Account) (*Registration, error)

	// Remove deletes a registration and returns what was removed.
	// Returns an apperr not-found error if there was nothing to remove.
	Remove(ctx context.Context, guildID, userID string) (*Registration, error)

	// Lookup returns the registration of a user in a guild
	Lookup(ctx context.Context, guildID, userID string) (*Registration, error)

	// ListGuild returns every registration of a guild ordered by username
	ListGuild(ctx context.Context, guildID string) ([]*Registration, error)

	Close() error
}

// Options selects and configures a backend
type Options struct {
	Backend       string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open creates the configured store, instrumented with metrics
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)

	switch opts.Backend {
	case BackendFile, "":
		store, err = NewFileStore(opts.Path)
	case BackendSQLite:
		store, err = NewSQLiteStore(opts.Path)
	case BackendBolt:
		store, err = NewBoltStore(opts.Path)
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store = NewRedisStore(client, DefaultRedisPrefix)
	default:
		return nil, fmt.Errorf("unknown registry backend: %s", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	return &instrumented{Store: store}, nil
}

// instrumented records every operation in metrics
type instrumented struct {
	Store
}

func (s *instrumented) Upsert(ctx context.Context, guildID, userID string, account game.Account) (*Registration, error) {
	reg, err := s.Store.Upsert(ctx, guildID, userID, account)
	metrics.ObserveRegistry("upsert", err, false)
	return reg, err
}

func (s *instrumented) Remove(ctx context.Context, guildID, userID string) (*Registration, error) {
	reg, err := s.Store.Remove(ctx, guildID, userID)
	metrics.ObserveRegistry("remove", err, apperr.IsNotFound(err))
	return reg, err
}

func (s *instrumented) Lookup(ctx context.Context, guildID, userID string) (*Registration, error) {
	reg, err := s.Store.Lookup(ctx, guildID, userID)
	metrics.ObserveRegistry("lookup", err, apperr.IsNotFound(err))
	return reg, err
}

func (s *instrumented) ListGuild(ctx context.Context, guildID string) ([]*Registration, error) {
	regs, err := s.Store.ListGuild(ctx, guildID)
	metrics.ObserveRegistry("list", err, false)
	return regs, err
}

func validateKey(guildID, userID string) error {
	if strings.TrimSpace(guildID) == "" {
		return apperr.NewValidationError("guildID", "guild id is required")
	}
	if strings.TrimSpace(userID) == "" {
		return apperr.NewValidationError("userID", "user id is required")
	}
	return nil
}

func notFound(guildID, userID string) error {
	return apperr.NewNotFoundError("registration", guildID+"/"+userID)
}

// sortRegistrations orders by username, case-insensitively, then user ID
func sortRegistrations(regs []*Registration) {
	sort.Slice(regs, func(i, j int) bool {
		a, b := strings.ToLower(regs[i].Username), strings.ToLower(regs[j].Username)
		if a != b {
			return a < b
		}
		return regs[i].UserID < regs[j].UserID
	})
}
