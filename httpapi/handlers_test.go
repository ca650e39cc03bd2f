package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dungeonbot/config"
	"dungeonbot/events"
	"dungeonbot/repository"
	"dungeonbot/repository/testutil"
	"dungeonbot/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type downPinger struct{}

func (downPinger) PingContext(context.Context) error { return errors.New("connection refused") }

func newTestServer(t *testing.T) (*httptest.Server, service.UserService) {
	t.Helper()
	testDB := testutil.SetupSQLiteDatabase(t)
	tables := repository.NewTables(testDB.DB)
	bus := events.NewBus()

	m := service.NewManagers(tables.Stores(), 100, bus)
	require.NoError(t, m.Init(context.Background()))
	users := service.NewUserService(m, repository.NewUnitOfWorkFactory(tables, bus), config.NewTestConfig())

	srv := httptest.NewServer(NewRouter(testDB.DB, users))
	t.Cleanup(srv.Close)
	return srv, users
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]any
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", &body))
	assert.Equal(t, true, body["ok"])

	down := httptest.NewServer(NewRouter(downPinger{}, nil))
	defer down.Close()
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, down.URL+"/healthz", &body))
	assert.Equal(t, "down", body["db"])
}

func TestUser(t *testing.T) {
	srv, users := newTestServer(t)
	ctx := context.Background()

	var errBody map[string]string
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/users/123456789012345678", &errBody))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/users/abc", &errBody))

	users.Get(ctx, 123456789012345678)

	var u userView
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/users/123456789012345678", &u))
	assert.Equal(t, "123456789012345678", u.ID)
	assert.Equal(t, int64(100), u.Gold)
	assert.Equal(t, "town", u.Location)
}

func TestLeaderboard(t *testing.T) {
	srv, users := newTestServer(t)
	ctx := context.Background()

	_, err := users.Give(ctx, 0, 1, 2, 40)
	require.NoError(t, err)
	users.Get(ctx, 3)

	var body struct {
		Users []userView `json:"users"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/leaderboard?limit=2", &body))
	require.Len(t, body.Users, 2)
	assert.Equal(t, "2", body.Users[0].ID)
	assert.Equal(t, int64(140), body.Users[0].Gold)
	assert.Equal(t, "3", body.Users[1].ID)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/leaderboard", &body))
	assert.Len(t, body.Users, 3)

	var errBody map[string]string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/leaderboard?limit=0", &errBody))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/leaderboard?limit=many", &errBody))
}
