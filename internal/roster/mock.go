package roster

import "sync"

// Mock is an in-memory implementation of RosterStore for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	Players   map[string]PlayerInfo
	Matches   map[string]*MatchRecord
	Snapshots map[string][]StatSnapshot

	// Call records
	UpsertMatchCalls       []*MatchRecord
	SaveStatSnapshotsCalls []string
	UpdateMatchStateCalls  []struct {
		MatchID string
		State   MatchState
	}

	// Error injection
	UpsertMatchErr error
	SaveSnapsErr   error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		Players:   make(map[string]PlayerInfo),
		Matches:   make(map[string]*MatchRecord),
		Snapshots: make(map[string][]StatSnapshot),
	}
}

func (m *Mock) AddPlayer(playerID, name string, createdAt int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Players[playerID] = PlayerInfo{ID: playerID, Name: name, CreatedAt: createdAt}
}

func (m *Mock) UpsertPlayers(players []PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range players {
		m.Players[p.ID] = p
	}
	return nil
}

func (m *Mock) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	players := make([]PlayerInfo, 0, len(m.Players))
	for _, p := range m.Players {
		players = append(players, p)
	}
	return players, nil
}

func (m *Mock) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	players := []PlayerInfo{}
	for _, id := range playerIDs {
		if p, ok := m.Players[id]; ok {
			players = append(players, p)
		}
	}
	return players, nil
}

func (m *Mock) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Players[playerID]
	return ok
}

func (m *Mock) UpsertMatch(match *MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMatchCalls = append(m.UpsertMatchCalls, match)
	if m.UpsertMatchErr != nil {
		return m.UpsertMatchErr
	}
	m.Matches[match.ID] = match
	return nil
}

func (m *Mock) GetMatch(matchID string) (*MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Matches[matchID], nil
}

func (m *Mock) GetAllMatches() ([]*MatchRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matches := make([]*MatchRecord, 0, len(m.Matches))
	for _, match := range m.Matches {
		matches = append(matches, match)
	}
	return matches, nil
}

func (m *Mock) UpdateMatchState(matchID string, state MatchState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateMatchStateCalls = append(m.UpdateMatchStateCalls, struct {
		MatchID string
		State   MatchState
	}{matchID, state})
	if match, ok := m.Matches[matchID]; ok {
		match.State = state
	}
	return nil
}

func (m *Mock) SaveStatSnapshots(matchID string, snapshots []StatSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveStatSnapshotsCalls = append(m.SaveStatSnapshotsCalls, matchID)
	if m.SaveSnapsErr != nil {
		return m.SaveSnapsErr
	}
	m.Snapshots[matchID] = snapshots
	return nil
}

func (m *Mock) GetStatSnapshots(matchID string) ([]StatSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Snapshots[matchID], nil
}

func (m *Mock) GetFairnessLeaderboard() ([]LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := []LeaderboardEntry{}
	for _, snaps := range m.Snapshots {
		for _, snap := range snaps {
			entries = append(entries, LeaderboardEntry{
				PlayerID:           snap.PlayerID,
				PlayerName:         snap.PlayerName,
				Matches:            1,
				TimeOnFieldSeconds: snap.Stats.TimeOnFieldSeconds,
				TotalPoints:        snap.Points.Total(),
			})
		}
	}
	return entries, nil
}

func (m *Mock) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Players = make(map[string]PlayerInfo)
	m.Matches = make(map[string]*MatchRecord)
	m.Snapshots = make(map[string][]StatSnapshot)
}

func (m *Mock) ClearMatch(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Matches, matchID)
	delete(m.Snapshots, matchID)
}

var _ RosterStore = (*Mock)(nil)
