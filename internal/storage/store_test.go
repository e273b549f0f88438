package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/game"
)

// backends returns a fresh store of every kind
func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	fileStore, err := NewFileStore(filepath.Join(dir, "users.json"))
	require.NoError(t, err)

	sqliteStore, err := NewSQLiteStore(filepath.Join(dir, "registry.db"))
	require.NoError(t, err)

	boltStore, err := NewBoltStore(filepath.Join(dir, "registry.bolt"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	redisStore := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), DefaultRedisPrefix)

	stores := map[string]Store{
		BackendFile:   fileStore,
		BackendSQLite: sqliteStore,
		BackendBolt:   boltStore,
		BackendRedis:  redisStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

var qchrisd = game.Account{ID: 29016, Username: "qchrisd"}

func TestStoreContract(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Lookup(ctx, "g1", "u1")
			assert.True(t, apperr.IsNotFound(err), "empty store lookup")

			reg, err := store.Upsert(ctx, "g1", "u1", qchrisd)
			require.NoError(t, err)
			assert.Equal(t, &Registration{GuildID: "g1", UserID: "u1", AccountID: 29016, Username: "qchrisd"}, reg)

			got, err := store.Lookup(ctx, "g1", "u1")
			require.NoError(t, err)
			assert.Equal(t, qchrisd, got.Account())

			// guild isolation
			_, err = store.Lookup(ctx, "g2", "u1")
			assert.True(t, apperr.IsNotFound(err))

			// overwrite
			other := game.Account{ID: 5, Username: "Bravo"}
			_, err = store.Upsert(ctx, "g1", "u1", other)
			require.NoError(t, err)
			got, err = store.Lookup(ctx, "g1", "u1")
			require.NoError(t, err)
			assert.Equal(t, other, got.Account())

			_, err = store.Upsert(ctx, "g1", "u2", game.Account{ID: 6, Username: "alpha"})
			require.NoError(t, err)
			regs, err := store.ListGuild(ctx, "g1")
			require.NoError(t, err)
			require.Len(t, regs, 2)
			assert.Equal(t, "alpha", regs[0].Username)
			assert.Equal(t, "Bravo", regs[1].Username)

			removed, err := store.Remove(ctx, "g1", "u1")
			require.NoError(t, err)
			assert.Equal(t, other, removed.Account())

			_, err = store.Lookup(ctx, "g1", "u1")
			assert.True(t, apperr.IsNotFound(err))

			_, err = store.Remove(ctx, "g1", "u1")
			assert.True(t, apperr.IsNotFound(err), "second remove")

			_, err = store.Remove(ctx, "nope", "u1")
			assert.True(t, apperr.IsNotFound(err), "unknown guild")

			regs, err = store.ListGuild(ctx, "empty-guild")
			require.NoError(t, err)
			assert.Empty(t, regs)

			_, err = store.Upsert(ctx, "", "u1", qchrisd)
			assert.True(t, apperr.IsInvalidInput(err))
			_, err = store.Lookup(ctx, "g1", " ")
			assert.True(t, apperr.IsInvalidInput(err))
		})
	}
}

func TestStoreConcurrentUpserts(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const users = 20

			var wg sync.WaitGroup
			for i := 0; i < users; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := store.Upsert(ctx, "guild", fmt.Sprintf("user-%02d", i), game.Account{ID: int64(i), Username: fmt.Sprintf("p%02d", i)})
					assert.NoError(t, err)
				}(i)
			}
			wg.Wait()

			regs, err := store.ListGuild(ctx, "guild")
			require.NoError(t, err)
			assert.Len(t, regs, users)
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, backend := range []string{BackendFile, BackendSQLite, BackendBolt} {
		store, err := Open(ctx, Options{Backend: backend, Path: filepath.Join(dir, backend, "registry")})
		require.NoError(t, err, backend)

		_, err = store.Upsert(ctx, "g", "u", qchrisd)
		require.NoError(t, err)
		got, err := store.Lookup(ctx, "g", "u")
		require.NoError(t, err)
		assert.Equal(t, qchrisd, got.Account())
		require.NoError(t, store.Close())
	}

	mr := miniredis.RunT(t)
	store, err := Open(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = Open(ctx, Options{Backend: "mongo"})
	assert.Error(t, err)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, backend := range []string{BackendFile, BackendSQLite, BackendBolt} {
		path := filepath.Join(dir, "reopen-"+backend)

		store, err := Open(ctx, Options{Backend: backend, Path: path})
		require.NoError(t, err)
		_, err = store.Upsert(ctx, "g", "u", qchrisd)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		store, err = Open(ctx, Options{Backend: backend, Path: path})
		require.NoError(t, err)
		got, err := store.Lookup(ctx, "g", "u")
		require.NoError(t, err, backend)
		assert.Equal(t, qchrisd, got.Account())
		require.NoError(t, store.Close())
	}
}
