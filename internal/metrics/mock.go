package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	MatchesStartedCount   int
	MatchesCompletedCount int
	SubstitutionsCount    int
	SquadEditsCount       int
	SuggestionDurations   []float64
	NotifSentCount        int
	NotifFailedCount      int
	StartupTime           float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncMatchesStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesStartedCount++
}

func (m *Mock) IncMatchesCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesCompletedCount++
}

func (m *Mock) IncSubstitutions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubstitutionsCount++
}

func (m *Mock) IncSquadEdits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SquadEditsCount++
}

func (m *Mock) ObserveSuggestionDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuggestionDurations = append(m.SuggestionDurations, duration)
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifSentCount++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifFailedCount++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}
