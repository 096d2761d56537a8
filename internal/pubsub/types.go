package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType names the Pub/Sub topic a match event is published to.
type EventType string

const (
	EventMatchStarted   EventType = "match-started"
	EventMatchCompleted EventType = "match-completed"
	EventStatsSnapshot  EventType = "stats-snapshot"
)
