package rotation

import "github.com/charmbracelet/log"

// ApplySquadSelection reconciles player state with an edited squad selection. Every
// player whose ID is missing from selectedIDs has their transient assignment fields
// cleared and is parked as a substitute. Accumulated time and period counters survive
// removal, so a player who leaves the squad keeps their playing-time history.
// Players still in (or newly added to) the selection are left untouched; their state is
// established by match start or substitution logic. Selection IDs that do not resolve
// to a known player are ignored.
func ApplySquadSelection(players []*Player, selectedIDs []string) []*Player {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		if FindPlayer(players, id) == nil {
			log.Warn("Squad selection references unknown player, ignoring", "playerID", id)
			continue
		}
		selected[id] = true
	}

	for _, p := range players {
		if selected[p.ID] {
			continue
		}
		p.Stats.StartedMatchAs = nil
		p.Stats.StartedAtRole = nil
		p.Stats.StartedAtPosition = nil
		p.Stats.CurrentRole = nil
		p.Stats.CurrentPairKey = nil
		p.Stats.LastStintStart = nil
		p.Stats.CurrentStatus = StatusSubstitute
	}
	return players
}
