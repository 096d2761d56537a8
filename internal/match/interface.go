package match

import (
	"github.com/tobiasvn/benchboss/internal/notifier"
	"github.com/tobiasvn/benchboss/internal/roster"
)

// Store defines the database operations required by the match service.
type Store interface {
	GetAllPlayers() ([]roster.PlayerInfo, error)
	UpsertMatch(match *roster.MatchRecord) error
	GetMatch(matchID string) (*roster.MatchRecord, error)
	SaveStatSnapshots(matchID string, snapshots []roster.StatSnapshot) error
	GetFairnessLeaderboard() ([]roster.LeaderboardEntry, error)
}

// Notifier defines the notification operations required by the match service.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
