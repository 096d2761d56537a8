package rotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

func TestCalculateRolePoints(t *testing.T) {
	tests := []struct {
		name            string
		defenderSeconds int64
		attackerSeconds int64
		periodsAsGoalie int
		want            rotation.RolePoints
	}{
		{
			name: "no time at all yields zero points",
			want: rotation.RolePoints{},
		},
		{
			name:            "pure defender gets the full outfield budget",
			defenderSeconds: 280,
			want:            rotation.RolePoints{Defender: 3},
		},
		{
			name:            "pure attacker gets the full outfield budget",
			attackerSeconds: 600,
			want:            rotation.RolePoints{Attacker: 3},
		},
		{
			name:            "one period in goal leaves two outfield points",
			defenderSeconds: 150,
			attackerSeconds: 150,
			periodsAsGoalie: 1,
			want:            rotation.RolePoints{Goalie: 1, Defender: 1, Attacker: 1},
		},
		{
			name:            "full-time goalie takes the whole budget",
			periodsAsGoalie: 3,
			want:            rotation.RolePoints{Goalie: 3},
		},
		{
			name:            "goalie periods can exceed the budget",
			periodsAsGoalie: 4,
			defenderSeconds: 300,
			want:            rotation.RolePoints{Goalie: 4},
		},
		{
			name:            "goalie with outfield time only scores outfield for the remainder",
			periodsAsGoalie: 2,
			defenderSeconds: 500,
			attackerSeconds: 100,
			// ratios 5/6 and 1/6 of one remaining point round to 1 and 0
			want: rotation.RolePoints{Goalie: 2, Defender: 1, Attacker: 0},
		},
		{
			name:            "near-even split rounds to half points",
			defenderSeconds: 550,
			attackerSeconds: 450,
			// 1.65 and 1.35 both round to 1.5, already summing to the budget
			want: rotation.RolePoints{Defender: 1.5, Attacker: 1.5},
		},
		{
			name:            "equal ratios split the remainder evenly",
			defenderSeconds: 250,
			attackerSeconds: 250,
			periodsAsGoalie: 2,
			want:            rotation.RolePoints{Goalie: 2, Defender: 0.5, Attacker: 0.5},
		},
		{
			name:            "rounding drift is corrected on the larger share",
			defenderSeconds: 100,
			attackerSeconds: 300,
			// provisional 1.0 + 2.5 overshoots by 0.5; attacker absorbs the correction
			want: rotation.RolePoints{Defender: 1, Attacker: 2},
		},
		{
			name:            "lopsided split still sums to the budget",
			defenderSeconds: 890,
			attackerSeconds: 110,
			// 2.67 -> 2.5, 0.33 -> 0.5, sum 3
			want: rotation.RolePoints{Defender: 2.5, Attacker: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &rotation.Player{
				ID:   "p1",
				Name: "Test Player",
				Stats: rotation.PlayerStats{
					TimeAsDefenderSeconds: tt.defenderSeconds,
					TimeAsAttackerSeconds: tt.attackerSeconds,
					PeriodsAsGoalie:       tt.periodsAsGoalie,
				},
			}

			got := rotation.CalculateRolePoints(p)
			assert.Equal(t, tt.want, got)

			if tt.periodsAsGoalie < 3 && (tt.defenderSeconds > 0 || tt.attackerSeconds > 0 || tt.periodsAsGoalie > 0) {
				assert.InDelta(t, rotation.TotalRolePoints, got.Total(), 1e-9,
					"points should sum to the full budget while goalie points are under it")
			}
		})
	}
}

func TestCalculateRolePointsIsPure(t *testing.T) {
	p := &rotation.Player{
		Stats: rotation.PlayerStats{
			TimeAsDefenderSeconds: 321,
			TimeAsAttackerSeconds: 123,
			PeriodsAsGoalie:       1,
		},
	}
	before := p.Stats

	first := rotation.CalculateRolePoints(p)
	second := rotation.CalculateRolePoints(p)

	assert.Equal(t, first, second)
	assert.Equal(t, before, p.Stats, "the allocator must never mutate player stats")
}
