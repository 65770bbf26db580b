package events

import (
	"context"
	"time"
)

// DefaultPrefix is the subject prefix used when none is configured.
const DefaultPrefix = "dashboard"

// Entity kinds
const (
	KindTag        = "tag"
	KindWidget     = "widget"
	KindSurvey     = "survey"
	KindResponse   = "response"
	KindRespondent = "respondent"
	KindFilter     = "filter"
)

// Actions
const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
	ActionToggled    = "toggled"
	ActionCleared    = "cleared"
	ActionRecomputed = "recomputed"
)

// Event is the payload published after every successful dashboard mutation.
type Event struct {
	Kind   string    `json:"kind"`
	Action string    `json:"action"`
	ID     string    `json:"id,omitempty"`
	Data   any       `json:"data,omitempty"`
	At     time.Time `json:"at"`
}

// Topic returns the event subject without a prefix, e.g. "tag.deleted".
func (e Event) Topic() string {
	return e.Kind + "." + e.Action
}

// Subject joins a prefix and a topic into a NATS subject.
func Subject(prefix, topic string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "." + topic
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
