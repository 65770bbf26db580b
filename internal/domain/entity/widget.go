package entity

import (
	"encoding/json"
	"fmt"
)

// WidgetType represents the presentation kind of a widget
type WidgetType string

const (
	WidgetTypeLine   WidgetType = "line"
	WidgetTypeBar    WidgetType = "bar"
	WidgetTypePie    WidgetType = "pie"
	WidgetTypeArea   WidgetType = "area"
	WidgetTypeMetric WidgetType = "metric"
	WidgetTypeTable  WidgetType = "table"
	WidgetTypeStatus WidgetType = "status"
)

// WidgetSize is the grid footprint: sm 1x1, md 2x1, lg 2x2
type WidgetSize string

const (
	WidgetSizeSmall  WidgetSize = "sm"
	WidgetSizeMedium WidgetSize = "md"
	WidgetSizeLarge  WidgetSize = "lg"
)

// Valid reports whether t is a known widget type
func (t WidgetType) Valid() bool {
	switch t {
	case WidgetTypeLine, WidgetTypeBar, WidgetTypePie, WidgetTypeArea,
		WidgetTypeMetric, WidgetTypeTable, WidgetTypeStatus:
		return true
	}
	return false
}

// Valid reports whether s is a known size
func (s WidgetSize) Valid() bool {
	return s == WidgetSizeSmall || s == WidgetSizeMedium || s == WidgetSizeLarge
}

// Position is an optional grid placement
type Position struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Widget is a titled, sized, tagged presentation unit.
// Data is kept exactly as supplied; it is only interpreted when rendered.
type Widget struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Type     WidgetType      `json:"type"`
	Tags     TagSet          `json:"tags"`
	Data     json.RawMessage `json:"data,omitempty"`
	Size     WidgetSize      `json:"size"`
	Position *Position       `json:"position,omitempty"`
}

// WidgetCreate represents the data needed to create a widget
type WidgetCreate struct {
	Title    string          `json:"title"`
	Type     WidgetType      `json:"type"`
	Tags     []string        `json:"tags"`
	Data     json.RawMessage `json:"data"`
	Size     WidgetSize      `json:"size"`
	Position *Position       `json:"position"`
}

// WidgetUpdate represents the data that can be updated.
// A null position means "unchanged"; ClearPosition removes it.
type WidgetUpdate struct {
	Title         *string         `json:"title"`
	Type          *WidgetType     `json:"type"`
	Tags          *[]string       `json:"tags"`
	Data          json.RawMessage `json:"data"`
	Size          *WidgetSize     `json:"size"`
	Position      *Position       `json:"position"`
	ClearPosition bool            `json:"clearPosition"`
}

// Validate checks the enum fields of a new widget
func (in *WidgetCreate) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("widget title is required")
	}
	if !in.Type.Valid() {
		return fmt.Errorf("unknown widget type %q", in.Type)
	}
	if !in.Size.Valid() {
		return fmt.Errorf("unknown widget size %q", in.Size)
	}
	return nil
}

// Validate checks the fields present in the update
func (in *WidgetUpdate) Validate() error {
	if in.Title != nil && *in.Title == "" {
		return fmt.Errorf("widget title cannot be empty")
	}
	if in.Type != nil && !in.Type.Valid() {
		return fmt.Errorf("unknown widget type %q", *in.Type)
	}
	if in.Size != nil && !in.Size.Valid() {
		return fmt.Errorf("unknown widget size %q", *in.Size)
	}
	if in.ClearPosition && in.Position != nil {
		return fmt.Errorf("position and clearPosition are mutually exclusive")
	}
	return nil
}

// Apply merges the update into w. Nil fields are left untouched.
func (in *WidgetUpdate) Apply(w *Widget) {
	if in.Title != nil {
		w.Title = *in.Title
	}
	if in.Type != nil {
		w.Type = *in.Type
	}
	if in.Tags != nil {
		w.Tags = NewTagSet(*in.Tags...)
	}
	if in.Data != nil {
		w.Data = cloneRaw(in.Data)
	}
	if in.Size != nil {
		w.Size = *in.Size
	}
	switch {
	case in.ClearPosition:
		w.Position = nil
	case in.Position != nil:
		p := *in.Position
		w.Position = &p
	}
}

// Clone returns a deep copy so callers cannot mutate stored state
func (w *Widget) Clone() *Widget {
	out := *w
	out.Tags = w.Tags.Clone()
	out.Data = cloneRaw(w.Data)
	if w.Position != nil {
		p := *w.Position
		out.Position = &p
	}
	return &out
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
