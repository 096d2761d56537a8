package roster_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobiasvn/benchboss/internal/database"
	"github.com/tobiasvn/benchboss/internal/roster"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (roster.RosterStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := roster.New(db)
	return store, db, dbTeardown
}

func TestAddAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	store.AddPlayer("player1", "Alma", 100)
	store.AddPlayer("player2", "Bertil", 200)

	assert.True(t, store.IsKnownPlayer("player1"))
	assert.False(t, store.IsKnownPlayer("player3"))

	allPlayers, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Len(t, allPlayers, 2)
	assert.Equal(t, "Alma", allPlayers[0].Name)
}

func TestUpsertPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.UpsertPlayers([]roster.PlayerInfo{
		{ID: "p1", Name: "Alma"},
		{ID: "p2", Name: "Bertil"},
	})
	require.NoError(t, err)

	// Re-upserting updates names without duplicating rows.
	err = store.UpsertPlayers([]roster.PlayerInfo{{ID: "p1", Name: "Alma K"}})
	require.NoError(t, err)

	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Alma K", players[0].Name)
}

func TestGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayers([]roster.PlayerInfo{
		{ID: "p1", Name: "Alma"},
		{ID: "p2", Name: "Bertil"},
		{ID: "p3", Name: "Cleo"},
	}))

	t.Run("gets multiple players", func(t *testing.T) {
		players, err := store.GetPlayers([]string{"p1", "p3"})
		require.NoError(t, err)
		require.Len(t, players, 2)

		playerMap := make(map[string]roster.PlayerInfo)
		for _, p := range players {
			playerMap[p.ID] = p
		}
		assert.Contains(t, playerMap, "p1")
		assert.Contains(t, playerMap, "p3")
	})

	t.Run("returns empty slice for no matches", func(t *testing.T) {
		players, err := store.GetPlayers([]string{"p4", "p5"})
		require.NoError(t, err)
		assert.Len(t, players, 0)
	})

	t.Run("returns empty slice for empty id slice", func(t *testing.T) {
		players, err := store.GetPlayers([]string{})
		require.NoError(t, err)
		assert.Len(t, players, 0)
	})
}

func TestUpsertAndGetMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	players := rotation.InitializePlayers([]string{"Alma", "Bertil"})
	startedAt := int64(1700000000)
	match := &roster.MatchRecord{
		ID:                  "m1",
		TeamName:            "U9 Blue",
		Opponent:            "Rivals FC",
		PeriodLengthSeconds: 900,
		PeriodCount:         3,
		CurrentPeriod:       1,
		State:               roster.StateLive,
		StartedAt:           &startedAt,
		Players:             players,
		SquadIDs:            []string{players[0].ID},
	}

	require.NoError(t, store.UpsertMatch(match))

	got, err := store.GetMatch("m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "U9 Blue", got.TeamName)
	assert.Equal(t, roster.StateLive, got.State)
	require.Len(t, got.Players, 2)
	assert.Equal(t, players[0].ID, got.Players[0].ID)
	assert.Equal(t, []string{players[0].ID}, got.SquadIDs)

	// Upsert with a new period keeps a single row.
	match.CurrentPeriod = 2
	require.NoError(t, store.UpsertMatch(match))

	matches, err := store.GetAllMatches()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].CurrentPeriod)
}

func TestGetMatchUnknownIDReturnsNil(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	got, err := store.GetMatch("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMatchState(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	match := &roster.MatchRecord{ID: "m1", TeamName: "U9 Blue", PeriodLengthSeconds: 900, PeriodCount: 3, CurrentPeriod: 1, State: roster.StateLive}
	require.NoError(t, store.UpsertMatch(match))

	require.NoError(t, store.UpdateMatchState("m1", roster.StateCompleted))

	got, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, roster.StateCompleted, got.State)
}

func TestStatSnapshotsAndLeaderboard(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	for _, id := range []string{"m1", "m2"} {
		match := &roster.MatchRecord{ID: id, TeamName: "U9 Blue", PeriodLengthSeconds: 900, PeriodCount: 3, CurrentPeriod: 3, State: roster.StateCompleted}
		require.NoError(t, store.UpsertMatch(match))
	}

	snap := func(matchID, playerID, name string, fieldSecs int64, points rotation.RolePoints) roster.StatSnapshot {
		return roster.StatSnapshot{
			MatchID:    matchID,
			PlayerID:   playerID,
			PlayerName: name,
			Stats:      rotation.PlayerStats{TimeOnFieldSeconds: fieldSecs},
			Points:     points,
		}
	}

	require.NoError(t, store.SaveStatSnapshots("m1", []roster.StatSnapshot{
		snap("m1", "p1", "Alma", 600, rotation.RolePoints{Defender: 3}),
		snap("m1", "p2", "Bertil", 300, rotation.RolePoints{Goalie: 1, Attacker: 2}),
	}))
	require.NoError(t, store.SaveStatSnapshots("m2", []roster.StatSnapshot{
		snap("m2", "p1", "Alma", 450, rotation.RolePoints{Attacker: 3}),
	}))

	snaps, err := store.GetStatSnapshots("m1")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "Alma", snaps[0].PlayerName)
	assert.Equal(t, int64(600), snaps[0].Stats.TimeOnFieldSeconds)
	assert.Equal(t, rotation.RolePoints{Goalie: 1, Attacker: 2}, snaps[1].Points)

	entries, err := store.GetFairnessLeaderboard()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, 2, entries[0].Matches)
	assert.Equal(t, int64(1050), entries[0].TimeOnFieldSeconds)
	assert.InDelta(t, 6.0, entries[0].TotalPoints, 1e-9)
}

func TestClearAndClearMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	store.AddPlayer("p1", "Alma", 0)
	require.NoError(t, store.UpsertMatch(&roster.MatchRecord{ID: "m1", TeamName: "U9 Blue", PeriodLengthSeconds: 900, PeriodCount: 3, CurrentPeriod: 1, State: roster.StateLive}))

	store.ClearMatch("m1")
	got, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, store.IsKnownPlayer("p1"))

	store.Clear()
	assert.False(t, store.IsKnownPlayer("p1"))
}
