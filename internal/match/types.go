package match

import (
	"sync"

	"github.com/tobiasvn/benchboss/internal/metrics"
	"github.com/tobiasvn/benchboss/internal/pubsub"
	"github.com/tobiasvn/benchboss/internal/roster"
	"github.com/tobiasvn/benchboss/internal/rotation"
)

// Service owns the live in-memory match state and drives the rotation engine in
// response to coach actions. All mutations happen under the service lock and are
// persisted as snapshots at period and match boundaries.
type Service struct {
	store    Store
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient

	mu   sync.RWMutex
	live map[string]*roster.MatchRecord
}

// LineupAssignment places one player into the starting lineup.
type LineupAssignment struct {
	PlayerID string        `json:"player_id"`
	Role     rotation.Role `json:"role"`
	PairKey  *string       `json:"pair_key,omitempty"`
}

// MatchSetup carries everything needed to kick off a match.
type MatchSetup struct {
	TeamName            string             `json:"team_name"`
	Opponent            string             `json:"opponent"`
	PeriodLengthSeconds int64              `json:"period_length_seconds"`
	PeriodCount         int                `json:"period_count"`
	Lineup              []LineupAssignment `json:"lineup"`
}
