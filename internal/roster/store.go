package roster

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

// AddPlayer inserts a single roster member, ignoring duplicates.
func (s *store) AddPlayer(playerID, name string, createdAt int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO roster_players (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING`, playerID, name, createdAt)
	if err != nil {
		log.Error("Failed to add player", "error", err, "playerID", playerID)
	}
}

// UpsertPlayers inserts or updates roster members in a single transaction.
func (s *store) UpsertPlayers(players []PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO roster_players (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name, p.CreatedAt); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetAllPlayers returns the whole roster, ordered by name.
func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, created_at FROM roster_players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []PlayerInfo{}
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			log.Error("Failed to scan roster player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetPlayers returns the roster members matching the given IDs.
func (s *store) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(playerIDs) == 0 {
		return []PlayerInfo{}, nil
	}

	placeholders := strings.Repeat("?,", len(playerIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(playerIDs))
	for i, id := range playerIDs {
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT id, name, created_at FROM roster_players WHERE id IN (%s)`, placeholders)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []PlayerInfo{}
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			log.Error("Failed to scan roster player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// IsKnownPlayer reports whether a player ID exists in the roster.
func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM roster_players WHERE id = ?)`, playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check player existence", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

// UpsertMatch inserts a new match or updates an existing one, including the serialized
// player collection so a live match can be recovered after a restart.
func (s *store) UpsertMatch(match *MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playersJSON, err := json.Marshal(match.Players)
	if err != nil {
		return err
	}
	squadJSON, err := json.Marshal(match.SquadIDs)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO matches (id, team_name, opponent, period_length_seconds, period_count, current_period, periods_credited, state, started_at, finished_at, players_json, squad_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			team_name = excluded.team_name,
			opponent = excluded.opponent,
			period_length_seconds = excluded.period_length_seconds,
			period_count = excluded.period_count,
			current_period = excluded.current_period,
			periods_credited = excluded.periods_credited,
			state = excluded.state,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			players_json = excluded.players_json,
			squad_json = excluded.squad_json;
	`, match.ID, match.TeamName, match.Opponent, match.PeriodLengthSeconds, match.PeriodCount,
		match.CurrentPeriod, match.PeriodsCredited, match.State, match.StartedAt, match.FinishedAt, string(playersJSON), string(squadJSON))
	return err
}

// GetMatch retrieves a single match by ID. Returns nil when the match is unknown.
func (s *store) GetMatch(matchID string) (*MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, team_name, opponent, period_length_seconds, period_count, current_period, periods_credited, state, started_at, finished_at, players_json, squad_json
		FROM matches WHERE id = ?
	`, matchID)

	match, err := s.scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return match, err
}

// GetAllMatches retrieves every tracked match, newest first.
func (s *store) GetAllMatches() ([]*MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, team_name, opponent, period_length_seconds, period_count, current_period, periods_credited, state, started_at, finished_at, players_json, squad_json
		FROM matches ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*MatchRecord
	for rows.Next() {
		match, err := s.scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

// UpdateMatchState transitions a match to a new lifecycle state.
func (s *store) UpdateMatchState(matchID string, state MatchState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE matches SET state = ? WHERE id = ?`, state, matchID)
	return err
}

// scanMatch is a helper to scan a single match row.
func (s *store) scanMatch(scanner interface{ Scan(...any) error }) (*MatchRecord, error) {
	var match MatchRecord
	var opponent, playersJSON, squadJSON sql.NullString

	err := scanner.Scan(
		&match.ID, &match.TeamName, &opponent, &match.PeriodLengthSeconds, &match.PeriodCount,
		&match.CurrentPeriod, &match.PeriodsCredited, &match.State, &match.StartedAt, &match.FinishedAt, &playersJSON, &squadJSON,
	)
	if err != nil {
		return nil, err
	}

	match.Opponent = opponent.String

	if playersJSON.Valid && playersJSON.String != "" {
		if err := json.Unmarshal([]byte(playersJSON.String), &match.Players); err != nil {
			log.Error("Failed to unmarshal players_json", "error", err, "matchID", match.ID)
		}
	}
	if squadJSON.Valid && squadJSON.String != "" {
		if err := json.Unmarshal([]byte(squadJSON.String), &match.SquadIDs); err != nil {
			log.Error("Failed to unmarshal squad_json", "error", err, "matchID", match.ID)
		}
	}

	return &match, nil
}

// SaveStatSnapshots replaces the stored per-player stat rows for a match.
func (s *store) SaveStatSnapshots(matchID string, snapshots []StatSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO match_stats (match_id, player_id, player_name,
			time_on_field_seconds, time_as_goalie_seconds, time_as_defender_seconds, time_as_attacker_seconds, time_as_sub_seconds,
			periods_as_goalie, periods_as_defender, periods_as_attacker,
			goalie_points, defender_points, attacker_points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id, player_id) DO UPDATE SET
			player_name = excluded.player_name,
			time_on_field_seconds = excluded.time_on_field_seconds,
			time_as_goalie_seconds = excluded.time_as_goalie_seconds,
			time_as_defender_seconds = excluded.time_as_defender_seconds,
			time_as_attacker_seconds = excluded.time_as_attacker_seconds,
			time_as_sub_seconds = excluded.time_as_sub_seconds,
			periods_as_goalie = excluded.periods_as_goalie,
			periods_as_defender = excluded.periods_as_defender,
			periods_as_attacker = excluded.periods_as_attacker,
			goalie_points = excluded.goalie_points,
			defender_points = excluded.defender_points,
			attacker_points = excluded.attacker_points;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, snap := range snapshots {
		_, err := stmt.Exec(matchID, snap.PlayerID, snap.PlayerName,
			snap.Stats.TimeOnFieldSeconds, snap.Stats.TimeAsGoalieSeconds, snap.Stats.TimeAsDefenderSeconds,
			snap.Stats.TimeAsAttackerSeconds, snap.Stats.TimeAsSubSeconds,
			snap.Stats.PeriodsAsGoalie, snap.Stats.PeriodsAsDefender, snap.Stats.PeriodsAsAttacker,
			snap.Points.Goalie, snap.Points.Defender, snap.Points.Attacker)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetStatSnapshots retrieves the stored per-player stats for a match.
func (s *store) GetStatSnapshots(matchID string) ([]StatSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT match_id, player_id, player_name,
			time_on_field_seconds, time_as_goalie_seconds, time_as_defender_seconds, time_as_attacker_seconds, time_as_sub_seconds,
			periods_as_goalie, periods_as_defender, periods_as_attacker,
			goalie_points, defender_points, attacker_points
		FROM match_stats WHERE match_id = ? ORDER BY player_name
	`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []StatSnapshot{}
	for rows.Next() {
		var snap StatSnapshot
		err := rows.Scan(&snap.MatchID, &snap.PlayerID, &snap.PlayerName,
			&snap.Stats.TimeOnFieldSeconds, &snap.Stats.TimeAsGoalieSeconds, &snap.Stats.TimeAsDefenderSeconds,
			&snap.Stats.TimeAsAttackerSeconds, &snap.Stats.TimeAsSubSeconds,
			&snap.Stats.PeriodsAsGoalie, &snap.Stats.PeriodsAsDefender, &snap.Stats.PeriodsAsAttacker,
			&snap.Points.Goalie, &snap.Points.Defender, &snap.Points.Attacker)
		if err != nil {
			log.Error("Failed to scan match stats row", "error", err)
			continue
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// GetFairnessLeaderboard aggregates playing time and allocated points per player
// across all archived matches, most field time first.
func (s *store) GetFairnessLeaderboard() ([]LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id, player_name, COUNT(match_id),
			SUM(time_on_field_seconds),
			SUM(goalie_points + defender_points + attacker_points)
		FROM match_stats
		GROUP BY player_id, player_name
		ORDER BY SUM(time_on_field_seconds) DESC, player_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.Matches, &e.TimeOnFieldSeconds, &e.TotalPoints); err != nil {
			log.Error("Failed to scan leaderboard row", "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear wipes all persisted data. Intended for tests and manual resets.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"match_stats", "matches", "roster_players"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
		}
	}
}

// ClearMatch removes a single match and its stat rows.
func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM match_stats WHERE match_id = ?", matchID); err != nil {
		log.Error("Failed to clear match stats", "error", err, "matchID", matchID)
	}
	if _, err := s.db.Exec("DELETE FROM matches WHERE id = ?", matchID); err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", matchID)
	}
}
