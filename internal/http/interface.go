package http

import "github.com/tobiasvn/benchboss/internal/roster"

// Store defines the database operations required by the HTTP handlers.
type Store interface {
	UpsertPlayers(players []roster.PlayerInfo) error
	GetAllPlayers() ([]roster.PlayerInfo, error)
	GetAllMatches() ([]*roster.MatchRecord, error)
	GetStatSnapshots(matchID string) ([]roster.StatSnapshot, error)
	GetFairnessLeaderboard() ([]roster.LeaderboardEntry, error)
	Clear()
	ClearMatch(matchID string)
}
