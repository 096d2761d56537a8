package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func New(projectID string) PubSubClient {
	pubSubC, err := pubsub.NewClient(context.Background(), projectID)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	return &client{client: pubSubC}
}

// Publish encodes the payload with MessagePack and publishes it to the
// topic named by the event. It blocks until the server acks the message.
func (c *client) Publish(event EventType, payload any) error {
	ctx := context.Background()
	data, err := msgpack.Marshal(payload)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	result := c.client.Topic(string(event)).Publish(ctx, &pubsub.Message{Data: data})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish event", "error", err, "event", event)
		return err
	}
	log.Info("Published event", "event", event, "serverID", serverID)
	return nil
}

// Decode unmarshals a MessagePack message body into v.
func (c *client) Decode(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

func (c *client) Close() error {
	return c.client.Close()
}
