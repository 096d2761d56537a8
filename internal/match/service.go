package match

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tobiasvn/benchboss/internal/metrics"
	"github.com/tobiasvn/benchboss/internal/pubsub"
	"github.com/tobiasvn/benchboss/internal/roster"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

// New creates a new match Service.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
		live:     make(map[string]*roster.MatchRecord),
	}
}

// ensureInSquad adds a player to the match squad if they are not already selected,
// so late additions get period credits and end up in the stat snapshots.
func ensureInSquad(match *roster.MatchRecord, playerID string) {
	for _, id := range match.SquadIDs {
		if id == playerID {
			return
		}
	}
	match.SquadIDs = append(match.SquadIDs, playerID)
}

func statusForRole(role rotation.Role) rotation.PlayerStatus {
	switch role {
	case rotation.RoleGoalie:
		return rotation.StatusGoalie
	case rotation.RoleSubstitute:
		return rotation.StatusSubstitute
	default:
		return rotation.StatusOnField
	}
}

// StartMatch creates a live match from the stored roster and the starting lineup.
// Every roster player gets a fresh zeroed stats record; lineup players open their
// first stint at kickoff and have their starting assignment snapshotted.
func (s *Service) StartMatch(setup MatchSetup, now int64) (*roster.MatchRecord, error) {
	if setup.PeriodCount <= 0 || setup.PeriodLengthSeconds <= 0 {
		return nil, fmt.Errorf("invalid match setup: period count and length must be positive")
	}
	if len(setup.Lineup) == 0 {
		return nil, fmt.Errorf("invalid match setup: starting lineup is empty")
	}

	infos, err := s.store.GetAllPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("roster is empty, seed players first")
	}

	players := make([]*rotation.Player, 0, len(infos))
	for _, info := range infos {
		players = append(players, &rotation.Player{
			ID:   info.ID,
			Name: info.Name,
			Stats: rotation.PlayerStats{
				CurrentStatus: rotation.StatusSubstitute,
			},
		})
	}

	var squadIDs []string
	for _, assignment := range setup.Lineup {
		p := rotation.FindPlayer(players, assignment.PlayerID)
		if p == nil {
			log.Warn("Lineup references unknown player, ignoring", "playerID", assignment.PlayerID)
			continue
		}
		role := assignment.Role
		status := statusForRole(role)
		rotation.BeginStint(p, role, status, assignment.PairKey, now)
		p.Stats.StartedMatchAs = &status
		p.Stats.StartedAtRole = &role
		p.Stats.StartedAtPosition = assignment.PairKey
		squadIDs = append(squadIDs, p.ID)
	}
	if len(squadIDs) == 0 {
		return nil, fmt.Errorf("no lineup player resolved against the roster")
	}

	match := &roster.MatchRecord{
		ID:                  uuid.NewString(),
		TeamName:            setup.TeamName,
		Opponent:            setup.Opponent,
		PeriodLengthSeconds: setup.PeriodLengthSeconds,
		PeriodCount:         setup.PeriodCount,
		CurrentPeriod:       1,
		State:               roster.StateLive,
		StartedAt:           &now,
		Players:             players,
		SquadIDs:            squadIDs,
	}

	s.mu.Lock()
	s.live[match.ID] = match
	s.mu.Unlock()

	if err := s.store.UpsertMatch(match); err != nil {
		return nil, fmt.Errorf("failed to persist match: %w", err)
	}

	s.metrics.IncMatchesStarted()
	if err := s.pubsub.Publish(pubsub.EventMatchStarted, match); err != nil {
		log.Error("Failed to publish match-started event", "error", err, "matchID", match.ID)
	}

	log.Info("Match started", "matchID", match.ID, "team", match.TeamName, "squadSize", len(squadIDs))
	return match, nil
}

// get resolves a live match, falling back to the store so a restarted process can
// pick up an in-flight match.
func (s *Service) get(matchID string) (*roster.MatchRecord, error) {
	if match, ok := s.live[matchID]; ok {
		return match, nil
	}
	match, err := s.store.GetMatch(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match: %w", err)
	}
	if match == nil {
		return nil, fmt.Errorf("unknown match %q", matchID)
	}
	if match.State == roster.StateCompleted {
		return nil, fmt.Errorf("match %q is already completed", matchID)
	}
	log.Info("Recovered live match from store", "matchID", matchID)
	s.live[matchID] = match
	return match, nil
}

// Get returns a match by ID, live or archived.
func (s *Service) Get(matchID string) (*roster.MatchRecord, error) {
	s.mu.RLock()
	if match, ok := s.live[matchID]; ok {
		s.mu.RUnlock()
		return match, nil
	}
	s.mu.RUnlock()
	return s.store.GetMatch(matchID)
}

// Substitute swaps a field player for a bench player. The incoming player inherits
// the outgoing player's role; the pair key defaults to the outgoing player's slot
// unless an explicit one is given.
func (s *Service) Substitute(matchID, outID, inID string, pairKey *string, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.get(matchID)
	if err != nil {
		return err
	}

	out := rotation.FindPlayer(match.Players, outID)
	in := rotation.FindPlayer(match.Players, inID)
	if out == nil || in == nil {
		return fmt.Errorf("substitution references unknown player")
	}
	if out.Stats.CurrentRole == nil {
		return fmt.Errorf("player %q has no active assignment to substitute", outID)
	}

	role := *out.Stats.CurrentRole
	if pairKey == nil {
		pairKey = out.Stats.CurrentPairKey
	}

	rotation.CloseStint(out, now)
	rotation.BeginStint(out, rotation.RoleSubstitute, rotation.StatusSubstitute, nil, now)

	rotation.CloseStint(in, now)
	rotation.BeginStint(in, role, statusForRole(role), pairKey, now)

	ensureInSquad(match, in.ID)

	s.metrics.IncSubstitutions()
	log.Info("Substitution applied", "matchID", matchID, "out", out.Name, "in", in.Name, "role", role)
	return s.store.UpsertMatch(match)
}

// SwapRoles exchanges the roles and pair keys of two players who are both on the
// pitch, e.g. rotating a defender pair into attack at a natural break.
func (s *Service) SwapRoles(matchID, aID, bID string, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.get(matchID)
	if err != nil {
		return err
	}

	a := rotation.FindPlayer(match.Players, aID)
	b := rotation.FindPlayer(match.Players, bID)
	if a == nil || b == nil {
		return fmt.Errorf("role swap references unknown player")
	}
	if a.Stats.CurrentRole == nil || b.Stats.CurrentRole == nil {
		return fmt.Errorf("both players need an active assignment to swap roles")
	}

	aRole, aPair := *a.Stats.CurrentRole, a.Stats.CurrentPairKey
	bRole, bPair := *b.Stats.CurrentRole, b.Stats.CurrentPairKey

	rotation.CloseStint(a, now)
	rotation.BeginStint(a, bRole, statusForRole(bRole), bPair, now)
	rotation.CloseStint(b, now)
	rotation.BeginStint(b, aRole, statusForRole(aRole), aPair, now)

	s.metrics.IncSubstitutions()
	log.Info("Roles swapped", "matchID", matchID, "a", a.Name, "b", b.Name)
	return s.store.UpsertMatch(match)
}

// ChangeGoalie puts a new player in goal; the previous goalie goes to the bench.
func (s *Service) ChangeGoalie(matchID, newGoalieID string, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.get(matchID)
	if err != nil {
		return err
	}

	in := rotation.FindPlayer(match.Players, newGoalieID)
	if in == nil {
		return fmt.Errorf("goalie change references unknown player")
	}

	for _, p := range match.Players {
		if p.Stats.CurrentRole != nil && *p.Stats.CurrentRole == rotation.RoleGoalie && p.ID != newGoalieID {
			rotation.CloseStint(p, now)
			rotation.BeginStint(p, rotation.RoleSubstitute, rotation.StatusSubstitute, nil, now)
		}
	}

	rotation.CloseStint(in, now)
	rotation.BeginStint(in, rotation.RoleGoalie, rotation.StatusGoalie, nil, now)
	ensureInSquad(match, in.ID)

	s.metrics.IncSubstitutions()
	log.Info("Goalie changed", "matchID", matchID, "goalie", in.Name)
	return s.store.UpsertMatch(match)
}

// Pause stops the clock: every open stint is closed at the pause boundary so paused
// time is never counted.
func (s *Service) Pause(matchID string, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.get(matchID)
	if err != nil {
		return err
	}
	if match.State == roster.StatePaused {
		return nil
	}

	for _, p := range match.Players {
		rotation.CloseStint(p, now)
	}
	match.State = roster.StatePaused
	log.Info("Match paused", "matchID", matchID)
	return s.store.UpsertMatch(match)
}

// Resume restarts the clock for every player with a live assignment.
func (s *Service) Resume(matchID string, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.get(matchID)
	if err != nil {
		return err
	}
	if match.State != roster.StatePaused {
		return fmt.Errorf("match %q is not paused", matchID)
	}

	for _, id := range match.SquadIDs {
		if p := rotation.FindPlayer(match.Players, id); p != nil {
			rotation.ReopenStint(p, now)
		}
	}
	match.State = roster.StateLive
	log.Info("Match resumed", "matchID", matchID)
	return s.store.UpsertMatch(match)
}

// EndPeriod closes the current period: stints are flushed and reopened at the
// boundary, every squad player is credited a period in their current role, and a
// stats snapshot is persisted. PeriodsCredited caps the crediting at PeriodCount,
// so a match can never record more periods than it has.
func (s *Service) EndPeriod(matchID string, now int64, dryRun bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.get(matchID)
	if err != nil {
		return err
	}
	if match.PeriodsCredited >= match.PeriodCount {
		return fmt.Errorf("all %d periods of match %q have already been recorded", match.PeriodCount, matchID)
	}

	for _, p := range match.Players {
		if p.Stats.LastStintStart != nil {
			rotation.EndStint(p, now)
			rotation.ReopenStint(p, now)
		}
	}

	completedPeriod := match.PeriodsCredited + 1
	for _, id := range match.SquadIDs {
		if p := rotation.FindPlayer(match.Players, id); p != nil {
			rotation.RecordPeriod(p)
		}
	}
	match.PeriodsCredited = completedPeriod
	if match.CurrentPeriod < match.PeriodCount {
		match.CurrentPeriod++
	}

	snapshots := s.snapshot(match)
	if err := s.store.SaveStatSnapshots(match.ID, snapshots); err != nil {
		log.Error("Failed to save period snapshot", "error", err, "matchID", matchID)
	}
	if err := s.pubsub.Publish(pubsub.EventStatsSnapshot, snapshots); err != nil {
		log.Error("Failed to publish stats snapshot", "error", err, "matchID", matchID)
	}
	if err := s.notifier.SendPeriodSummary(match, completedPeriod, dryRun); err != nil {
		log.Error("Failed to send period summary", "error", err, "matchID", matchID)
	}

	log.Info("Period ended", "matchID", matchID, "period", completedPeriod)
	return s.store.UpsertMatch(match)
}

// EditSquad applies a mid-match squad selection change. Removed players have their
// open stints flushed before the reconciler clears their transient state, so no
// elapsed time is lost and their accumulated history survives.
func (s *Service) EditSquad(matchID string, selectedIDs []string, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.get(matchID)
	if err != nil {
		return err
	}

	selected := make(map[string]bool, len(selectedIDs))
	var known []string
	for _, id := range selectedIDs {
		if rotation.FindPlayer(match.Players, id) == nil {
			log.Warn("Squad edit references unknown player, ignoring", "playerID", id)
			continue
		}
		selected[id] = true
		known = append(known, id)
	}

	for _, id := range match.SquadIDs {
		if selected[id] {
			continue
		}
		if p := rotation.FindPlayer(match.Players, id); p != nil {
			rotation.CloseStint(p, now)
		}
	}

	rotation.ApplySquadSelection(match.Players, known)
	match.SquadIDs = known

	s.metrics.IncSquadEdits()
	log.Info("Squad selection updated", "matchID", matchID, "squadSize", len(known))
	return s.store.UpsertMatch(match)
}

// FinishMatch blows the final whistle: all open stints are closed, the last period
// is credited unless EndPeriod already recorded it, the final snapshot (including
// allocated role points) is archived and the coach gets the match report.
func (s *Service) FinishMatch(matchID string, now int64, dryRun bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.get(matchID)
	if err != nil {
		return err
	}

	for _, p := range match.Players {
		rotation.CloseStint(p, now)
	}
	if match.PeriodsCredited < match.PeriodCount {
		for _, id := range match.SquadIDs {
			if p := rotation.FindPlayer(match.Players, id); p != nil {
				rotation.RecordPeriod(p)
			}
		}
		match.PeriodsCredited++
	}

	match.State = roster.StateCompleted
	match.FinishedAt = &now

	snapshots := s.snapshot(match)
	if err := s.store.SaveStatSnapshots(match.ID, snapshots); err != nil {
		return fmt.Errorf("failed to archive match stats: %w", err)
	}
	if err := s.store.UpsertMatch(match); err != nil {
		return fmt.Errorf("failed to persist finished match: %w", err)
	}

	s.metrics.IncMatchesCompleted()
	if err := s.pubsub.Publish(pubsub.EventMatchCompleted, snapshots); err != nil {
		log.Error("Failed to publish match-completed event", "error", err, "matchID", matchID)
	}
	if err := s.notifier.SendMatchReport(match, snapshots, dryRun); err != nil {
		log.Error("Failed to send match report", "error", err, "matchID", matchID)
	}

	delete(s.live, matchID)
	log.Info("Match finished", "matchID", matchID)
	return nil
}

// RolePoints computes the current fairness score for every squad player. Read-only.
func (s *Service) RolePoints(matchID string) (map[string]rotation.RolePoints, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, err := s.lookup(matchID)
	if err != nil {
		return nil, err
	}

	points := make(map[string]rotation.RolePoints, len(match.SquadIDs))
	for _, id := range match.SquadIDs {
		if p := rotation.FindPlayer(match.Players, id); p != nil {
			points[p.ID] = rotation.CalculateRolePoints(p)
		}
	}
	return points, nil
}

// Suggestions ranks the squad for the next substitution. Read-only.
func (s *Service) Suggestions(matchID string) ([]rotation.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, err := s.lookup(matchID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	suggestions := rotation.RankForSubstitution(match.Players, match.SquadIDs)
	s.metrics.ObserveSuggestionDuration(time.Since(start).Seconds())
	return suggestions, nil
}

// NotifySuggestions computes the substitution ranking and pushes it to the coach.
func (s *Service) NotifySuggestions(matchID string, dryRun bool) error {
	suggestions, err := s.Suggestions(matchID)
	if err != nil {
		return err
	}
	s.mu.RLock()
	match, err := s.lookup(matchID)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return s.notifier.SendSubstitutionSuggestions(match, suggestions, dryRun)
}

// ShareLeaderboard sends the cross-match fairness standings to the coach channel.
func (s *Service) ShareLeaderboard(dryRun bool) error {
	entries, err := s.store.GetFairnessLeaderboard()
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return s.notifier.SendFairnessLeaderboard(entries, dryRun)
}

// lookup is the read-only counterpart of get: no recovery, no map mutation.
func (s *Service) lookup(matchID string) (*roster.MatchRecord, error) {
	if match, ok := s.live[matchID]; ok {
		return match, nil
	}
	match, err := s.store.GetMatch(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match: %w", err)
	}
	if match == nil {
		return nil, fmt.Errorf("unknown match %q", matchID)
	}
	return match, nil
}

// snapshot captures the stats of every squad player plus anyone who already
// accumulated time or periods before leaving the squad, so a mid-match removal
// never erases a player from the archive.
func (s *Service) snapshot(match *roster.MatchRecord) []roster.StatSnapshot {
	inSquad := make(map[string]bool, len(match.SquadIDs))
	for _, id := range match.SquadIDs {
		inSquad[id] = true
	}

	snapshots := make([]roster.StatSnapshot, 0, len(match.SquadIDs))
	for _, p := range match.Players {
		if !inSquad[p.ID] && !hasMatchHistory(p) {
			continue
		}
		snapshots = append(snapshots, roster.StatSnapshot{
			MatchID:    match.ID,
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Stats:      p.Stats,
			Points:     rotation.CalculateRolePoints(p),
		})
	}
	return snapshots
}

func hasMatchHistory(p *rotation.Player) bool {
	st := p.Stats
	return st.TimeOnFieldSeconds > 0 || st.TimeAsGoalieSeconds > 0 ||
		st.TimeAsDefenderSeconds > 0 || st.TimeAsAttackerSeconds > 0 ||
		st.TimeAsSubSeconds > 0 ||
		st.PeriodsAsGoalie > 0 || st.PeriodsAsDefender > 0 || st.PeriodsAsAttacker > 0
}
