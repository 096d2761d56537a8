package pubsub

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Mock is a mock implementation of PubSubClient for testing.
type Mock struct {
	mu sync.Mutex

	Published []struct {
		Event   EventType
		Payload any
	}
	PublishErr error
	Closed     bool
}

var _ PubSubClient = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Publish(event EventType, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, struct {
		Event   EventType
		Payload any
	}{event, payload})
	return m.PublishErr
}

func (m *Mock) Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
