package rotation

import "github.com/charmbracelet/log"

// BeginStint opens a new stint for the player: role, status and pair key are set and the
// stint clock starts at atTimeEpoch. Callers are expected to have closed any prior stint;
// if one is still open it is flushed here first so elapsed time is never dropped.
func BeginStint(p *Player, role Role, status PlayerStatus, pairKey *string, atTimeEpoch int64) {
	if p.Stats.LastStintStart != nil {
		log.Warn("BeginStint called with an open stint, closing it implicitly", "playerID", p.ID)
		EndStint(p, atTimeEpoch)
	}
	p.Stats.CurrentRole = &role
	p.Stats.CurrentStatus = status
	p.Stats.CurrentPairKey = pairKey
	start := atTimeEpoch
	p.Stats.LastStintStart = &start
}

// EndStint flushes the elapsed time of the current stint into the accumulator matching
// the stint's role. Outfield roles additionally accrue TimeOnFieldSeconds, so the
// on-field total is a derived aggregate rather than a mutually exclusive bucket.
// LastStintStart is left in place; callers either BeginStint a new assignment immediately
// or use CloseStint to terminate tracking.
func EndStint(p *Player, atTimeEpoch int64) {
	if p.Stats.LastStintStart == nil {
		log.Warn("EndStint called with no open stint", "playerID", p.ID)
		return
	}
	elapsed := atTimeEpoch - *p.Stats.LastStintStart
	if elapsed < 0 {
		log.Warn("EndStint called with a timestamp before the stint start, clamping to zero",
			"playerID", p.ID, "start", *p.Stats.LastStintStart, "end", atTimeEpoch)
		elapsed = 0
	}

	role := RoleSubstitute
	if p.Stats.CurrentRole != nil {
		role = *p.Stats.CurrentRole
	}

	switch role {
	case RoleGoalie:
		p.Stats.TimeAsGoalieSeconds += elapsed
	case RoleDefender:
		p.Stats.TimeAsDefenderSeconds += elapsed
		p.Stats.TimeOnFieldSeconds += elapsed
	case RoleAttacker:
		p.Stats.TimeAsAttackerSeconds += elapsed
		p.Stats.TimeOnFieldSeconds += elapsed
	case RoleSubstitute:
		p.Stats.TimeAsSubSeconds += elapsed
	}
}

// CloseStint ends the current stint and stops the clock entirely. Used at pause
// boundaries and the final whistle, where no follow-up assignment reopens the stint.
func CloseStint(p *Player, atTimeEpoch int64) {
	if p.Stats.LastStintStart == nil {
		return
	}
	EndStint(p, atTimeEpoch)
	p.Stats.LastStintStart = nil
}

// ReopenStint restarts the clock for a player whose assignment is unchanged, e.g. when
// play resumes after a pause. A no-op for players with no current role.
func ReopenStint(p *Player, atTimeEpoch int64) {
	if p.Stats.CurrentRole == nil {
		return
	}
	start := atTimeEpoch
	p.Stats.LastStintStart = &start
}

// RecordPeriod credits a full period to the role the player holds at the period boundary.
func RecordPeriod(p *Player) {
	if p.Stats.CurrentRole == nil {
		return
	}
	switch *p.Stats.CurrentRole {
	case RoleGoalie:
		p.Stats.PeriodsAsGoalie++
	case RoleDefender:
		p.Stats.PeriodsAsDefender++
	case RoleAttacker:
		p.Stats.PeriodsAsAttacker++
	}
}
