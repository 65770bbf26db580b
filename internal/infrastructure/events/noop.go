package events

import "context"

// NoopPublisher is a Publisher that does nothing (used when no sink is configured).
type NoopPublisher struct{}

func (p *NoopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
