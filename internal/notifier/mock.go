package notifier

import (
	"sync"

	"github.com/tobiasvn/benchboss/internal/roster"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendPeriodSummaryCalls []struct {
		Match  *roster.MatchRecord
		Period int
	}
	SendMatchReportCalls []struct {
		Match     *roster.MatchRecord
		Snapshots []roster.StatSnapshot
	}
	SendSubstitutionSuggestionsCalls []struct {
		Match       *roster.MatchRecord
		Suggestions []rotation.Suggestion
	}
	SendFairnessLeaderboardCalls [][]roster.LeaderboardEntry

	// Error injection
	Err error
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPeriodSummaryCalls = nil
	m.SendMatchReportCalls = nil
	m.SendSubstitutionSuggestionsCalls = nil
	m.SendFairnessLeaderboardCalls = nil
}

func (m *Mock) SendPeriodSummary(match *roster.MatchRecord, period int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPeriodSummaryCalls = append(m.SendPeriodSummaryCalls, struct {
		Match  *roster.MatchRecord
		Period int
	}{match, period})
	return m.Err
}

func (m *Mock) SendMatchReport(match *roster.MatchRecord, snapshots []roster.StatSnapshot, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchReportCalls = append(m.SendMatchReportCalls, struct {
		Match     *roster.MatchRecord
		Snapshots []roster.StatSnapshot
	}{match, snapshots})
	return m.Err
}

func (m *Mock) SendSubstitutionSuggestions(match *roster.MatchRecord, suggestions []rotation.Suggestion, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSubstitutionSuggestionsCalls = append(m.SendSubstitutionSuggestionsCalls, struct {
		Match       *roster.MatchRecord
		Suggestions []rotation.Suggestion
	}{match, suggestions})
	return m.Err
}

func (m *Mock) SendFairnessLeaderboard(entries []roster.LeaderboardEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFairnessLeaderboardCalls = append(m.SendFairnessLeaderboardCalls, entries)
	return m.Err
}
