package notifier

import (
	"github.com/tobiasvn/benchboss/internal/roster"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

// Notifier defines a high-level interface for sending notifications about match events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// At a period boundary
	SendPeriodSummary(match *roster.MatchRecord, period int, dryRun bool) error
	// At the final whistle
	SendMatchReport(match *roster.MatchRecord, snapshots []roster.StatSnapshot, dryRun bool) error
	// On demand, to guide the next substitution
	SendSubstitutionSuggestions(match *roster.MatchRecord, suggestions []rotation.Suggestion, dryRun bool) error
	// Cross-match fairness standings
	SendFairnessLeaderboard(entries []roster.LeaderboardEntry, dryRun bool) error
}
