package fault

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flor3z/fault-bot/internal/apperr"
)

// newTestClient serves routes from a path->body map; unknown paths return 404
func newTestClient(t *testing.T, routes map[string]string) *Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.EscapedPath()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL, 5*time.Second)
	c.retry.InitialInterval = time.Millisecond
	c.retry.MaxInterval = 2 * time.Millisecond
	return c
}

func TestSearchAccount(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/searchUsers/qchrisd": `[{"id":1,"username":"qchrisdx"},{"id":29016,"username":"QChrisD"}]`,
		"/searchUsers/nobody":  `[]`,
		"/searchUsers/a%20b":   `[{"id":"7","username":"a b"}]`,
	})
	ctx := context.Background()

	account, err := c.SearchAccount(ctx, "qchrisd")
	require.NoError(t, err)
	assert.Equal(t, int64(29016), account.ID)
	assert.Equal(t, "QChrisD", account.Username)

	account, err = c.SearchAccount(ctx, "a b")
	require.NoError(t, err)
	assert.Equal(t, int64(7), account.ID)

	_, err = c.SearchAccount(ctx, "nobody")
	assert.True(t, apperr.IsNotFound(err))

	_, err = c.SearchAccount(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))

	_, err = c.SearchAccount(ctx, "   ")
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestGetElo(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/getEloData/29016": `{"id":"29016","username":"qchrisd","eloTitle":"Silver","MMR":1223.1,"ranking":1129,"placementGamesRemain":0}`,
		"/getEloData/1":     `{}`,
		"/getEloData/2":     `null`,
	})
	ctx := context.Background()

	elo, err := c.GetElo(ctx, 29016)
	require.NoError(t, err)
	assert.Equal(t, int64(29016), elo.AccountID)
	assert.Equal(t, "Silver", elo.Title)
	assert.InDelta(t, 1223.1, elo.MMR, 1e-9)
	assert.Equal(t, 1129, elo.Ranking)

	_, err = c.GetElo(ctx, 1)
	assert.True(t, apperr.IsNotFound(err))
	_, err = c.GetElo(ctx, 2)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetMatches(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/getMatches/29016/1": `{"success":true,"matches":[{"id":991,"winner":1,"timeLength":"31:04","players":[
			{"playerId":29016,"team":1,"heroId":2,"heroLevel":15,"kills":8,"deaths":2,"assists":11,"cs":140,"username":"qchrisd","mmr":1223.1,"mmrChange":14.2},
			{"playerId":5,"team":0,"heroId":3,"heroLevel":13,"kills":1,"deaths":7,"assists":4,"cs":90,"username":"other","mmr":1100,"mmrChange":-13}]}]}`,
		"/getMatches/1/1": `{"success":false}`,
		"/getMatches/2/1": `{"success":true,"matches":[{"id":5,"winner":0,"players":[{"team":3}]}]}`,
	})
	ctx := context.Background()

	matches, err := c.GetMatches(ctx, 29016, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, int64(991), m.ID)
	assert.Equal(t, 1, m.WinnerTeam)
	assert.Equal(t, "31:04", m.DurationText)
	require.Len(t, m.Players, 2)
	assert.Equal(t, 140, m.Players[0].CS)
	assert.InDelta(t, -13.0, m.Players[1].MMRChange, 1e-9)

	_, err = c.GetMatches(ctx, 1, 1)
	assert.True(t, apperr.IsNotFound(err))

	_, err = c.GetMatches(ctx, 2, 1)
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestGetHeroStatsAndCatalog(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/getPlayerHeroStats/29016": `{"heroes":{"2":{"wins":3,"games":5,"kills":20,"deaths":10,"assists":15},"x":{"games":1}}}`,
		"/getPlayerHeroStats/1":     `{"heroes":{}}`,
		"/getStatsPerHero":          `{"heroes":{"Twinblast":{"Id":2,"wins":10},"Sparrow":{"Id":7}}}`,
	})
	ctx := context.Background()

	stats, err := c.GetHeroStats(ctx, 29016)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 5, stats[2].Games)
	assert.Equal(t, 15, stats[2].Assists)

	_, err = c.GetHeroStats(ctx, 1)
	assert.True(t, apperr.IsNotFound(err))

	heroes, err := c.GetHeroCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, heroes["Twinblast"].ID)
	assert.Equal(t, "Sparrow", heroes["Sparrow"].Name)
}

func TestGetAvatar(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/userAvatar/29016": `{"avatarId":4,"avatarURI":"https://api.playfault.com/imagecdn/avatars/4.jpg"}`,
		"/userAvatar/1":     `{"avatarId":0}`,
	})

	uri, err := c.GetAvatar(context.Background(), 29016)
	require.NoError(t, err)
	assert.Equal(t, "https://api.playfault.com/imagecdn/avatars/4.jpg", uri)

	_, err = c.GetAvatar(context.Background(), 1)
	assert.True(t, apperr.IsNotFound(err))
}

func TestServerErrorsAreRetriedThenUnavailable(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	c.retry.InitialInterval = time.Millisecond
	c.retry.MaxInterval = 2 * time.Millisecond

	_, err := c.GetElo(context.Background(), 29016)
	assert.True(t, apperr.IsUnavailable(err))
	assert.False(t, apperr.IsNotFound(err))
	assert.Equal(t, int32(c.retry.MaxAttempts), calls.Load())
}

func TestNotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	_, err := c.GetElo(context.Background(), 29016)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/getEloData/3": `{"eloTitle":`,
	})
	_, err := c.GetElo(context.Background(), 3)
	assert.True(t, apperr.IsInvalidInput(err))
}
