package rotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

func strPtr(s string) *string { return &s }

func TestBeginAndEndStint(t *testing.T) {
	tests := []struct {
		name          string
		role          rotation.Role
		status        rotation.PlayerStatus
		wantBucket    func(s rotation.PlayerStats) int64
		wantFieldTime bool
	}{
		{
			name:          "defender stint accrues defender and field time",
			role:          rotation.RoleDefender,
			status:        rotation.StatusOnField,
			wantBucket:    func(s rotation.PlayerStats) int64 { return s.TimeAsDefenderSeconds },
			wantFieldTime: true,
		},
		{
			name:          "attacker stint accrues attacker and field time",
			role:          rotation.RoleAttacker,
			status:        rotation.StatusOnField,
			wantBucket:    func(s rotation.PlayerStats) int64 { return s.TimeAsAttackerSeconds },
			wantFieldTime: true,
		},
		{
			name:       "goalie stint accrues goalie time only",
			role:       rotation.RoleGoalie,
			status:     rotation.StatusGoalie,
			wantBucket: func(s rotation.PlayerStats) int64 { return s.TimeAsGoalieSeconds },
		},
		{
			name:       "bench stint accrues substitute time only",
			role:       rotation.RoleSubstitute,
			status:     rotation.StatusSubstitute,
			wantBucket: func(s rotation.PlayerStats) int64 { return s.TimeAsSubSeconds },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &rotation.Player{ID: "p1", Name: "Alma"}

			rotation.BeginStint(p, tt.role, tt.status, strPtr("pair-a"), 1000)

			require.NotNil(t, p.Stats.CurrentRole)
			assert.Equal(t, tt.role, *p.Stats.CurrentRole)
			assert.Equal(t, tt.status, p.Stats.CurrentStatus)
			require.NotNil(t, p.Stats.CurrentPairKey)
			assert.Equal(t, "pair-a", *p.Stats.CurrentPairKey)
			require.NotNil(t, p.Stats.LastStintStart)
			assert.Equal(t, int64(1000), *p.Stats.LastStintStart)

			rotation.EndStint(p, 1240)

			assert.Equal(t, int64(240), tt.wantBucket(p.Stats))
			if tt.wantFieldTime {
				assert.Equal(t, int64(240), p.Stats.TimeOnFieldSeconds)
			} else {
				assert.Zero(t, p.Stats.TimeOnFieldSeconds)
			}
			// EndStint itself leaves the stint clock alone; the caller transitions.
			assert.NotNil(t, p.Stats.LastStintStart)
		})
	}
}

func TestEndStintWithNoOpenStintIsANoOp(t *testing.T) {
	p := &rotation.Player{ID: "p1"}

	rotation.EndStint(p, 500)

	assert.Zero(t, p.Stats.TimeOnFieldSeconds)
	assert.Zero(t, p.Stats.TimeAsSubSeconds)
	assert.Nil(t, p.Stats.LastStintStart)
}

func TestEndStintClampsNegativeElapsed(t *testing.T) {
	p := &rotation.Player{ID: "p1"}
	rotation.BeginStint(p, rotation.RoleDefender, rotation.StatusOnField, nil, 1000)

	rotation.EndStint(p, 900)

	assert.Zero(t, p.Stats.TimeAsDefenderSeconds)
	assert.Zero(t, p.Stats.TimeOnFieldSeconds)
}

func TestBeginStintFlushesAnOpenStint(t *testing.T) {
	p := &rotation.Player{ID: "p1"}
	rotation.BeginStint(p, rotation.RoleDefender, rotation.StatusOnField, nil, 1000)

	// Caller forgot EndStint; the elapsed defender time must not be dropped.
	rotation.BeginStint(p, rotation.RoleAttacker, rotation.StatusOnField, nil, 1300)

	assert.Equal(t, int64(300), p.Stats.TimeAsDefenderSeconds)
	assert.Equal(t, int64(300), p.Stats.TimeOnFieldSeconds)
	require.NotNil(t, p.Stats.CurrentRole)
	assert.Equal(t, rotation.RoleAttacker, *p.Stats.CurrentRole)
	require.NotNil(t, p.Stats.LastStintStart)
	assert.Equal(t, int64(1300), *p.Stats.LastStintStart)
}

func TestCloseAndReopenStintAroundPause(t *testing.T) {
	p := &rotation.Player{ID: "p1"}
	rotation.BeginStint(p, rotation.RoleAttacker, rotation.StatusOnField, nil, 0)

	// Pause at t=120, resume at t=300: the 180 paused seconds never count.
	rotation.CloseStint(p, 120)
	assert.Nil(t, p.Stats.LastStintStart)

	rotation.ReopenStint(p, 300)
	rotation.CloseStint(p, 360)

	assert.Equal(t, int64(180), p.Stats.TimeAsAttackerSeconds)
	assert.Equal(t, int64(180), p.Stats.TimeOnFieldSeconds)
	require.NotNil(t, p.Stats.CurrentRole)
	assert.Equal(t, rotation.RoleAttacker, *p.Stats.CurrentRole)
}

func TestReopenStintWithoutRoleIsANoOp(t *testing.T) {
	p := &rotation.Player{ID: "p1"}

	rotation.ReopenStint(p, 100)

	assert.Nil(t, p.Stats.LastStintStart)
}

func TestRecordPeriod(t *testing.T) {
	p := &rotation.Player{ID: "p1"}

	rotation.RecordPeriod(p) // no role yet
	assert.Zero(t, p.Stats.PeriodsAsGoalie)

	rotation.BeginStint(p, rotation.RoleGoalie, rotation.StatusGoalie, nil, 0)
	rotation.RecordPeriod(p)
	rotation.BeginStint(p, rotation.RoleDefender, rotation.StatusOnField, nil, 600)
	rotation.RecordPeriod(p)
	rotation.RecordPeriod(p)

	assert.Equal(t, 1, p.Stats.PeriodsAsGoalie)
	assert.Equal(t, 2, p.Stats.PeriodsAsDefender)
	assert.Zero(t, p.Stats.PeriodsAsAttacker)
}
