package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/flor3z/fault-bot/internal/game"
)

// DefaultRedisPrefix namespaces the per-guild hashes
const DefaultRedisPrefix = "faultbot:registry:"

// RedisStore keeps one hash per guild, field = Discord user ID
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed registry
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(guildID string) string {
	return s.prefix + guildID
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Upsert sets the user's field in the guild hash
func (s *RedisStore) Upsert(ctx context.Context, guildID, userID string, account game.Account) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("marshal account: %w", err)
	}
	if err := s.client.HSet(ctx, s.key(guildID), userID, payload).Err(); err != nil {
		return nil, fmt.Errorf("put registration: %w", err)
	}
	return newRegistration(guildID, userID, account), nil
}

// Remove reads and deletes the field inside a WATCH transaction
func (s *RedisStore) Remove(ctx context.Context, guildID, userID string) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}

	key := s.key(guildID)
	var account game.Account
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		payload, err := tx.HGet(ctx, key, userID).Bytes()
		if errors.Is(err, redis.Nil) {
			return notFound(guildID, userID)
		}
		if err != nil {
			return err
		}
		if err := json.Unmarshal(payload, &account); err != nil {
			return fmt.Errorf("unmarshal account: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, key, userID)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return nil, err
	}
	return newRegistration(guildID, userID, account), nil
}

// Lookup reads the user's field
func (s *RedisStore) Lookup(ctx context.Context, guildID, userID string) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}

	payload, err := s.client.HGet(ctx, s.key(guildID), userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(guildID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	var account game.Account
	if err := json.Unmarshal(payload, &account); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	return newRegistration(guildID, userID, account), nil
}

// ListGuild returns the whole guild hash
func (s *RedisStore) ListGuild(ctx context.Context, guildID string) ([]*Registration, error) {
	fields, err := s.client.HGetAll(ctx, s.key(guildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	regs := make([]*Registration, 0, len(fields))
	for userID, payload := range fields {
		var account game.Account
		if err := json.Unmarshal([]byte(payload), &account); err != nil {
			return nil, fmt.Errorf("unmarshal account %s: %w", userID, err)
		}
		regs = append(regs, newRegistration(guildID, userID, account))
	}

	sortRegistrations(regs)
	return regs, nil
}
