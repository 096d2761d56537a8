package roster

import (
	"database/sql"
	"sync"

	"github.com/tobiasvn/benchboss/internal/rotation"
)

// store handles all database operations for the roster and match archive.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// MatchState is the lifecycle state of a tracked match.
type MatchState string

const (
	StateLive      MatchState = "LIVE"
	StatePaused    MatchState = "PAUSED"
	StateCompleted MatchState = "COMPLETED"
)

// PlayerInfo represents a roster member in the store.
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// MatchRecord is the persisted form of a match: its setup, lifecycle state and the
// full player/stats collection serialized as JSON for crash recovery.
type MatchRecord struct {
	ID                  string             `json:"id"`
	TeamName            string             `json:"team_name"`
	Opponent            string             `json:"opponent,omitempty"`
	PeriodLengthSeconds int64              `json:"period_length_seconds"`
	PeriodCount         int                `json:"period_count"`
	CurrentPeriod       int                `json:"current_period"`
	PeriodsCredited     int                `json:"periods_credited"`
	State               MatchState         `json:"state"`
	StartedAt           *int64             `json:"started_at,omitempty"`
	FinishedAt          *int64             `json:"finished_at,omitempty"`
	Players             []*rotation.Player `json:"players"`
	SquadIDs            []string           `json:"squad_ids"`
}

// StatSnapshot is one player's accumulated stats for one match, with the allocated
// role points frozen alongside.
type StatSnapshot struct {
	MatchID    string               `json:"match_id"`
	PlayerID   string               `json:"player_id"`
	PlayerName string               `json:"player_name"`
	Stats      rotation.PlayerStats `json:"stats"`
	Points     rotation.RolePoints  `json:"points"`
}

// LeaderboardEntry aggregates a player's playing time and fairness points across matches.
type LeaderboardEntry struct {
	PlayerID           string  `json:"player_id"`
	PlayerName         string  `json:"player_name"`
	Matches            int     `json:"matches"`
	TimeOnFieldSeconds int64   `json:"time_on_field_seconds"`
	TotalPoints        float64 `json:"total_points"`
}
