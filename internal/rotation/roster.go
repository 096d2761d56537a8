package rotation

import "github.com/google/uuid"

// InitializePlayers builds a fresh player list with zeroed stats from a name list.
// Everyone starts the match as a substitute with no open stint.
func InitializePlayers(rosterNames []string) []*Player {
	players := make([]*Player, 0, len(rosterNames))
	for _, name := range rosterNames {
		players = append(players, &Player{
			ID:   uuid.NewString(),
			Name: name,
			Stats: PlayerStats{
				CurrentStatus: StatusSubstitute,
			},
		})
	}
	return players
}

// FindPlayer resolves a player by ID. Returns nil when the ID is unknown.
func FindPlayer(players []*Player, id string) *Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
