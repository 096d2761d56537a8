package rotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

func TestRankForSubstitution(t *testing.T) {
	players := rotation.InitializePlayers([]string{"Alma", "Bertil", "Cleo", "Disa"})

	// Alma played a lot, Bertil some, Cleo nothing. Disa is not in the squad.
	players[0].Stats.TimeAsDefenderSeconds = 900
	players[0].Stats.TimeOnFieldSeconds = 900
	players[1].Stats.TimeAsAttackerSeconds = 300
	players[1].Stats.TimeOnFieldSeconds = 300
	players[3].Stats.TimeAsAttackerSeconds = 1200
	players[3].Stats.TimeOnFieldSeconds = 1200

	squad := []string{players[0].ID, players[1].ID, players[2].ID, "unknown"}
	got := rotation.RankForSubstitution(players, squad)

	require.Len(t, got, 3, "unknown squad IDs are skipped")
	assert.Equal(t, "Cleo", got[0].PlayerName, "the player most owed time comes first")
	assert.Equal(t, "Bertil", got[1].PlayerName)
	assert.Equal(t, "Alma", got[2].PlayerName)
}

func TestRankForSubstitutionTieBreaksOnFieldTimeThenName(t *testing.T) {
	players := rotation.InitializePlayers([]string{"Cleo", "Alma", "Bertil"})

	// Identical points; Bertil has less field time than Cleo; Alma ties Cleo on both.
	for _, p := range players {
		p.Stats.TimeAsDefenderSeconds = 300
	}
	players[0].Stats.TimeOnFieldSeconds = 300
	players[1].Stats.TimeOnFieldSeconds = 300
	players[2].Stats.TimeOnFieldSeconds = 200

	squad := []string{players[0].ID, players[1].ID, players[2].ID}
	got := rotation.RankForSubstitution(players, squad)

	require.Len(t, got, 3)
	assert.Equal(t, "Bertil", got[0].PlayerName)
	assert.Equal(t, "Alma", got[1].PlayerName)
	assert.Equal(t, "Cleo", got[2].PlayerName)
}
