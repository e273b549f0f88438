package stats

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flor3z/fault-bot/internal/apperr"
	"github.com/flor3z/fault-bot/internal/game"
	"github.com/flor3z/fault-bot/internal/storage"
)

// fakeGateway serves canned data and counts calls
type fakeGateway struct {
	accounts map[string]*game.Account
	elos     map[int64]*game.Elo
	matches  map[int64][]*game.Match
	heroes   map[int64]map[int]game.HeroCounters
	avatars  map[int64]string
	catalog  map[string]game.Hero
	err      error

	lastMatchCount int
	calls    map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		accounts: map[string]*game.Account{},
		elos:     map[int64]*game.Elo{},
		matches:  map[int64][]*game.Match{},
		heroes:   map[int64]map[int]game.HeroCounters{},
		avatars:  map[int64]string{},
		calls:    map[string]int{},
	}
}

func (f *fakeGateway) SearchAccount(ctx context.Context, name string) (*game.Account, error) {
	f.calls["search"]++
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.accounts[name]; ok {
		return a, nil
	}
	return nil, apperr.NewNotFoundError("account", name)
}

func (f *fakeGateway) GetElo(ctx context.Context, id int64) (*game.Elo, error) {
	f.calls["elo"]++
	if e, ok := f.elos[id]; ok {
		return e, nil
	}
	return nil, apperr.NewNotFoundError("elo", "")
}

func (f *fakeGateway) GetMatches(ctx context.Context, id int64, count int) ([]*game.Match, error) {
	f.calls["matches"]++
	f.lastMatchCount = count
	if m, ok := f.matches[id]; ok {
		return m, nil
	}
	return nil, apperr.NewNotFoundError("matches", "")
}

func (f *fakeGateway) GetHeroStats(ctx context.Context, id int64) (map[int]game.HeroCounters, error) {
	f.calls["heroes"]++
	if h, ok := f.heroes[id]; ok {
		return h, nil
	}
	return nil, apperr.NewNotFoundError("hero stats", "")
}

func (f *fakeGateway) GetHeroCatalog(ctx context.Context) (map[string]game.Hero, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.catalog, nil
}

func (f *fakeGateway) GetAvatar(ctx context.Context, id int64) (string, error) {
	if u, ok := f.avatars[id]; ok {
		return u, nil
	}
	return "", apperr.NewNotFoundError("avatar", "")
}

var qchrisd = &game.Account{ID: 29016, Username: "qchrisd"}

func newAggregator(t *testing.T) (*Aggregator, *fakeGateway, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	gw := newFakeGateway()
	catalog := game.NewCatalog(map[string]game.Hero{"Twinblast": {ID: 2}, "Sparrow": {ID: 7}})
	return NewAggregator(store, gw, catalog), gw, store
}

func TestResolveAccountExplicitName(t *testing.T) {
	agg, gw, _ := newAggregator(t)
	gw.accounts["qchrisd"] = qchrisd

	account, err := agg.ResolveAccount(context.Background(), "g", "u", " qchrisd ")
	require.NoError(t, err)
	assert.Equal(t, qchrisd, account)

	_, err = agg.ResolveAccount(context.Background(), "g", "u", "ghost")
	assert.True(t, apperr.IsNotFound(err))
}

func TestResolveAccountFromRegistry(t *testing.T) {
	agg, gw, store := newAggregator(t)
	ctx := context.Background()

	_, err := agg.ResolveAccount(ctx, "g", "u", "")
	assert.True(t, apperr.IsNotFound(err))
	assert.Zero(t, gw.calls["search"], "registry lookups must not hit the gateway")

	_, err = store.Upsert(ctx, "g", "u", *qchrisd)
	require.NoError(t, err)

	account, err := agg.ResolveAccount(ctx, "g", "u", "")
	require.NoError(t, err)
	assert.Equal(t, *qchrisd, *account)
}

func TestResolveAccountTransportFailure(t *testing.T) {
	agg, gw, _ := newAggregator(t)
	gw.err = apperr.NewUnavailableError("searchUsers", errors.New("timeout"))

	_, err := agg.ResolveAccount(context.Background(), "g", "u", "qchrisd")
	assert.True(t, apperr.IsUnavailable(err))
}

func TestFetchElo(t *testing.T) {
	agg, gw, _ := newAggregator(t)
	gw.elos[29016] = &game.Elo{AccountID: 29016, Title: "Silver", MMR: 1223.1, Ranking: 1129}

	elo, err := agg.FetchElo(context.Background(), qchrisd)
	require.NoError(t, err)
	assert.Equal(t, "Silver", elo.Title)

	_, err = agg.FetchElo(context.Background(), &game.Account{ID: 1})
	assert.True(t, apperr.IsNotFound(err))
}

func TestFetchAvatarDegrades(t *testing.T) {
	agg, gw, _ := newAggregator(t)
	gw.avatars[29016] = "https://cdn/avatar.jpg"

	assert.Equal(t, "https://cdn/avatar.jpg", agg.FetchAvatar(context.Background(), qchrisd))
	assert.Equal(t, "", agg.FetchAvatar(context.Background(), &game.Account{ID: 1}))
}

func TestFetchLatestMatch(t *testing.T) {
	agg, gw, _ := newAggregator(t)
	gw.matches[29016] = []*game.Match{{ID: 991}}
	gw.matches[1] = []*game.Match{}

	m, err := agg.FetchLatestMatch(context.Background(), qchrisd)
	require.NoError(t, err)
	assert.Equal(t, int64(991), m.ID)
	assert.Equal(t, 1, gw.lastMatchCount, "only the latest match is requested")

	_, err = agg.FetchLatestMatch(context.Background(), &game.Account{ID: 1})
	assert.True(t, apperr.IsNotFound(err))

	_, err = agg.FetchLatestMatch(context.Background(), &game.Account{ID: 2})
	assert.True(t, apperr.IsNotFound(err))
}

func TestFetchHeroStatsJoinsCatalog(t *testing.T) {
	agg, gw, _ := newAggregator(t)
	gw.heroes[29016] = map[int]game.HeroCounters{
		7:  {Wins: 1, Games: 2},
		2:  {Wins: 3, Games: 5},
		42: {Games: 1},
	}
	gw.heroes[1] = map[int]game.HeroCounters{}

	stats, err := agg.FetchHeroStats(context.Background(), qchrisd)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, []string{"Twinblast", "Sparrow", game.UnknownHeroName},
		[]string{stats[0].HeroName, stats[1].HeroName, stats[2].HeroName})
	assert.Equal(t, 5, stats[0].Games)

	_, err = agg.FetchHeroStats(context.Background(), &game.Account{ID: 1})
	assert.True(t, apperr.IsNotFound(err))
}

func TestLoadCatalog(t *testing.T) {
	gw := newFakeGateway()
	gw.catalog = map[string]game.Hero{"Twinblast": {ID: 2}, "Sparrow": {ID: 7}}

	catalog := LoadCatalog(context.Background(), gw)
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, "Sparrow", catalog.NameOrUnknown(7))

	gw.err = apperr.NewUnavailableError("getStatsPerHero", errors.New("timeout"))
	catalog = LoadCatalog(context.Background(), gw)
	assert.Equal(t, 0, catalog.Len())
	assert.Equal(t, game.UnknownHeroName, catalog.NameOrUnknown(2))
}

func TestRefreshCatalog(t *testing.T) {
	agg, gw, _ := newAggregator(t)
	gw.heroes[29016] = map[int]game.HeroCounters{11: {Games: 1}}

	stats, err := agg.FetchHeroStats(context.Background(), qchrisd)
	require.NoError(t, err)
	assert.Equal(t, game.UnknownHeroName, stats[0].HeroName)

	gw.catalog = map[string]game.Hero{}
	agg.RefreshCatalog(context.Background())
	assert.Equal(t, 2, agg.Catalog().Len(), "an empty listing keeps the current catalog")

	gw.catalog = map[string]game.Hero{"Twinblast": {ID: 2}, "Sparrow": {ID: 7}, "Kira": {ID: 11}}
	agg.RefreshCatalog(context.Background())

	stats, err = agg.FetchHeroStats(context.Background(), qchrisd)
	require.NoError(t, err)
	assert.Equal(t, "Kira", stats[0].HeroName)

	gw.err = errors.New("boom")
	agg.RefreshCatalog(context.Background())
	assert.Equal(t, 3, agg.Catalog().Len())
}
