package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobiasvn/benchboss/internal/config"
	"github.com/tobiasvn/benchboss/internal/database"
	"github.com/tobiasvn/benchboss/internal/match"
	"github.com/tobiasvn/benchboss/internal/metrics"
	"github.com/tobiasvn/benchboss/internal/notifier"
	"github.com/tobiasvn/benchboss/internal/pubsub"
	"github.com/tobiasvn/benchboss/internal/roster"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) (*Server, roster.RosterStore, *notifier.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := roster.New(db)
	cfg := config.Config{TeamName: "U9 Blue"}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	mockNotifier := notifier.NewMock()
	matchSvc := match.New(store, mockNotifier, metricsSvc, pubsub.NewMock())

	server := NewServer(store, matchSvc, metricsSvc, metricsHandler, cfg, mockNotifier)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, store, mockNotifier, teardown
}

func seedRoster(t *testing.T, store roster.RosterStore, names ...string) []roster.PlayerInfo {
	t.Helper()
	now := time.Now().Unix()
	infos := make([]roster.PlayerInfo, 0, len(names))
	for i, name := range names {
		infos = append(infos, roster.PlayerInfo{ID: "p" + string(rune('1'+i)), Name: name, CreatedAt: now})
	}
	require.NoError(t, store.UpsertPlayers(infos))
	return infos
}

func postJSON(t *testing.T, server *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", path, bytes.NewReader(data))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func startTestMatch(t *testing.T, server *Server, infos []roster.PlayerInfo) string {
	t.Helper()
	setup := match.MatchSetup{
		Opponent:            "Rivals FC",
		PeriodLengthSeconds: 900,
		PeriodCount:         3,
		Lineup: []match.LineupAssignment{
			{PlayerID: infos[0].ID, Role: rotation.RoleGoalie},
			{PlayerID: infos[1].ID, Role: rotation.RoleDefender},
			{PlayerID: infos[2].ID, Role: rotation.RoleAttacker},
		},
	}
	rr := postJSON(t, server, "/match/start", setup)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var record roster.MatchRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	return record.ID
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestAddPlayersHandler(t *testing.T) {
	server, store, _, teardown := setupTestServer(t)
	defer teardown()

	rr := postJSON(t, server, "/roster/add", map[string]any{"names": []string{"Alma", "Bertil"}})
	assert.Equal(t, http.StatusOK, rr.Code)

	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Len(t, players, 2)

	t.Run("rejects empty name list", func(t *testing.T) {
		rr := postJSON(t, server, "/roster/add", map[string]any{"names": []string{}})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListRosterHandler(t *testing.T) {
	server, store, _, teardown := setupTestServer(t)
	defer teardown()

	seedRoster(t, store, "Alma", "Bertil")

	req, err := http.NewRequest("GET", "/roster", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alma")
	assert.Contains(t, rr.Body.String(), "Bertil")
}

func TestStartMatchHandler(t *testing.T) {
	server, store, _, teardown := setupTestServer(t)
	defer teardown()

	infos := seedRoster(t, store, "Alma", "Bertil", "Cleo", "David")
	matchID := startTestMatch(t, server, infos)
	assert.NotEmpty(t, matchID)

	t.Run("uses the configured team name when none is given", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/match?matchID="+matchID, nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var record roster.MatchRecord
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
		assert.Equal(t, "U9 Blue", record.TeamName)
	})

	t.Run("rejects a setup without a lineup", func(t *testing.T) {
		rr := postJSON(t, server, "/match/start", match.MatchSetup{PeriodLengthSeconds: 900, PeriodCount: 3})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSubstituteHandler(t *testing.T) {
	server, store, _, teardown := setupTestServer(t)
	defer teardown()

	infos := seedRoster(t, store, "Alma", "Bertil", "Cleo", "David")
	matchID := startTestMatch(t, server, infos)

	rr := postJSON(t, server, "/match/substitute", map[string]any{
		"match_id": matchID,
		"out_id":   infos[1].ID,
		"in_id":    infos[3].ID,
	})
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	record, err := server.Matches.Get(matchID)
	require.NoError(t, err)
	in := rotation.FindPlayer(record.Players, infos[3].ID)
	require.NotNil(t, in.Stats.CurrentRole)
	assert.Equal(t, rotation.RoleDefender, *in.Stats.CurrentRole)

	t.Run("rejects an unknown match", func(t *testing.T) {
		rr := postJSON(t, server, "/match/substitute", map[string]any{
			"match_id": "nope", "out_id": infos[1].ID, "in_id": infos[3].ID,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMatchLifecycleHandlers(t *testing.T) {
	server, store, mockNotifier, teardown := setupTestServer(t)
	defer teardown()

	infos := seedRoster(t, store, "Alma", "Bertil", "Cleo", "David")
	matchID := startTestMatch(t, server, infos)

	do := func(path string) *httptest.ResponseRecorder {
		req, err := http.NewRequest("GET", path, nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, do("/match/pause?matchID="+matchID).Code)
	assert.Equal(t, http.StatusOK, do("/match/resume?matchID="+matchID).Code)
	assert.Equal(t, http.StatusOK, do("/match/period/end?matchID="+matchID+"&dry_run=true").Code)
	require.Len(t, mockNotifier.SendPeriodSummaryCalls, 1)

	rr := postJSON(t, server, "/match/squad", map[string]any{
		"match_id":   matchID,
		"player_ids": []string{infos[0].ID, infos[1].ID, infos[2].ID, infos[3].ID},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, http.StatusOK, do("/match/points?matchID="+matchID).Code)
	assert.Equal(t, http.StatusOK, do("/match/suggestions?matchID="+matchID).Code)

	assert.Equal(t, http.StatusOK, do("/match/finish?matchID="+matchID+"&dry_run=true").Code)
	require.Len(t, mockNotifier.SendMatchReportCalls, 1)

	stats := do("/match/stats?matchID=" + matchID)
	assert.Equal(t, http.StatusOK, stats.Code)
	assert.Contains(t, stats.Body.String(), "Alma")

	record, err := server.Matches.Get(matchID)
	require.NoError(t, err)
	assert.Equal(t, roster.StateCompleted, record.State)

	leaderboard := do("/leaderboard")
	assert.Equal(t, http.StatusOK, leaderboard.Code)
	assert.Contains(t, leaderboard.Body.String(), "Alma")
}

func TestClearStoreHandler(t *testing.T) {
	server, store, _, teardown := setupTestServer(t)
	defer teardown()

	seedRoster(t, store, "Alma")

	req, err := http.NewRequest("GET", "/clear", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Empty(t, players)
}
