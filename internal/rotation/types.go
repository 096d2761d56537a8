package rotation

// Role is the on-pitch role a player holds during a stint.
type Role string

const (
	RoleGoalie     Role = "GOALIE"
	RoleDefender   Role = "DEFENDER"
	RoleAttacker   Role = "ATTACKER"
	RoleSubstitute Role = "SUBSTITUTE"
)

// PlayerStatus is the coarse on-field status, orthogonal to the exact role.
type PlayerStatus string

const (
	StatusOnField    PlayerStatus = "ON_FIELD"
	StatusSubstitute PlayerStatus = "SUBSTITUTE"
	StatusGoalie     PlayerStatus = "GOALIE"
)

// TotalRolePoints is the fixed fairness budget allocated per player per match.
const TotalRolePoints = 3.0

// PlayerStats tracks a single player's assignments and accumulated time for one match.
// The cumulative second/period counters only ever grow during a match; squad edits reset
// the transient fields but never the accumulators.
type PlayerStats struct {
	StartedMatchAs    *PlayerStatus `json:"started_match_as,omitempty"`
	StartedAtRole     *Role         `json:"started_at_role,omitempty"`
	StartedAtPosition *string       `json:"started_at_position,omitempty"`

	CurrentRole    *Role        `json:"current_role,omitempty"`
	CurrentStatus  PlayerStatus `json:"current_status"`
	CurrentPairKey *string      `json:"current_pair_key,omitempty"`

	// LastStintStart is the epoch-seconds timestamp the current stint opened at.
	// Nil means no open stint.
	LastStintStart *int64 `json:"last_stint_start,omitempty"`

	TimeOnFieldSeconds    int64 `json:"time_on_field_seconds"`
	TimeAsGoalieSeconds   int64 `json:"time_as_goalie_seconds"`
	TimeAsDefenderSeconds int64 `json:"time_as_defender_seconds"`
	TimeAsAttackerSeconds int64 `json:"time_as_attacker_seconds"`
	TimeAsSubSeconds      int64 `json:"time_as_sub_seconds"`

	PeriodsAsGoalie   int `json:"periods_as_goalie"`
	PeriodsAsDefender int `json:"periods_as_defender"`
	PeriodsAsAttacker int `json:"periods_as_attacker"`
}

// Player is one roster member in a match. ID is stable for the match; Name is display-only.
type Player struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Stats PlayerStats `json:"stats"`
}

// RolePoints is the fairness score derived from accumulated time. Half points are legal
// values, hence float64. Derived on demand, never persisted back into PlayerStats.
type RolePoints struct {
	Goalie   float64 `json:"goalie_points"`
	Defender float64 `json:"defender_points"`
	Attacker float64 `json:"attacker_points"`
}

// Total returns the summed fairness score across all three buckets.
func (p RolePoints) Total() float64 {
	return p.Goalie + p.Defender + p.Attacker
}
