package roster

// RosterStore defines the interface for interacting with the team's persisted data.
type RosterStore interface {
	AddPlayer(playerID, name string, createdAt int64)
	UpsertPlayers(players []PlayerInfo) error
	GetAllPlayers() ([]PlayerInfo, error)
	GetPlayers(playerIDs []string) ([]PlayerInfo, error)
	IsKnownPlayer(playerID string) bool

	UpsertMatch(match *MatchRecord) error
	GetMatch(matchID string) (*MatchRecord, error)
	GetAllMatches() ([]*MatchRecord, error)
	UpdateMatchState(matchID string, state MatchState) error

	SaveStatSnapshots(matchID string, snapshots []StatSnapshot) error
	GetStatSnapshots(matchID string) ([]StatSnapshot, error)
	GetFairnessLeaderboard() ([]LeaderboardEntry, error)

	Clear()
	ClearMatch(matchID string)
}
