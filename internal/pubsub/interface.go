package pubsub

// PubSubClient publishes match events to downstream consumers and
// decodes messages received from them.
type PubSubClient interface {
	Publish(event EventType, payload any) error
	Decode(data []byte, v any) error
	Close() error
}
