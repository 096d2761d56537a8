package rotation

import "sort"

// Suggestion is one entry in the substitution recommendation feed: the players who
// have had the least fair share so far come first.
type Suggestion struct {
	PlayerID           string       `json:"player_id"`
	PlayerName         string       `json:"player_name"`
	CurrentStatus      PlayerStatus `json:"current_status"`
	Points             RolePoints   `json:"points"`
	TimeOnFieldSeconds int64        `json:"time_on_field_seconds"`
}

// RankForSubstitution orders the squad by ascending fairness score so the first entry
// is the player most owed playing time. Ties break on field seconds, then name so the
// ordering is deterministic for equal records.
func RankForSubstitution(players []*Player, squadIDs []string) []Suggestion {
	suggestions := make([]Suggestion, 0, len(squadIDs))
	for _, id := range squadIDs {
		p := FindPlayer(players, id)
		if p == nil {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			PlayerID:           p.ID,
			PlayerName:         p.Name,
			CurrentStatus:      p.Stats.CurrentStatus,
			Points:             CalculateRolePoints(p),
			TimeOnFieldSeconds: p.Stats.TimeOnFieldSeconds,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Points.Total() != b.Points.Total() {
			return a.Points.Total() < b.Points.Total()
		}
		if a.TimeOnFieldSeconds != b.TimeOnFieldSeconds {
			return a.TimeOnFieldSeconds < b.TimeOnFieldSeconds
		}
		return a.PlayerName < b.PlayerName
	})
	return suggestions
}
