package entity

import "fmt"

// TagColor is one of the eight palette colors a tag can take
type TagColor string

const (
	TagColorBlue   TagColor = "blue"
	TagColorGreen  TagColor = "green"
	TagColorPurple TagColor = "purple"
	TagColorOrange TagColor = "orange"
	TagColorPink   TagColor = "pink"
	TagColorCyan   TagColor = "cyan"
	TagColorRed    TagColor = "red"
	TagColorYellow TagColor = "yellow"
)

// TagCategory decides which group a tag is listed under.
// Filtering ignores it.
type TagCategory string

const (
	TagCategorySurvey TagCategory = "survey"
	TagCategoryUser   TagCategory = "user"
)

// Valid reports whether c is part of the palette
func (c TagColor) Valid() bool {
	switch c {
	case TagColorBlue, TagColorGreen, TagColorPurple, TagColorOrange,
		TagColorPink, TagColorCyan, TagColorRed, TagColorYellow:
		return true
	}
	return false
}

// Valid reports whether c is a known category
func (c TagCategory) Valid() bool {
	return c == TagCategorySurvey || c == TagCategoryUser
}

// Tag represents a tag entity
type Tag struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Color    TagColor    `json:"color"`
	Category TagCategory `json:"category"`
}

// TagCreate represents the data needed to create a tag
type TagCreate struct {
	Name     string      `json:"name" toml:"name"`
	Color    TagColor    `json:"color" toml:"color"`
	Category TagCategory `json:"category" toml:"category"`
}

// TagUpdate represents the data that can be updated
type TagUpdate struct {
	Name     *string      `json:"name"`
	Color    *TagColor    `json:"color"`
	Category *TagCategory `json:"category"`
}

// Validate checks the enum fields of a new tag
func (in *TagCreate) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("tag name is required")
	}
	if !in.Color.Valid() {
		return fmt.Errorf("unknown tag color %q", in.Color)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("unknown tag category %q", in.Category)
	}
	return nil
}

// Validate checks the fields present in the update
func (in *TagUpdate) Validate() error {
	if in.Name != nil && *in.Name == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	if in.Color != nil && !in.Color.Valid() {
		return fmt.Errorf("unknown tag color %q", *in.Color)
	}
	if in.Category != nil && !in.Category.Valid() {
		return fmt.Errorf("unknown tag category %q", *in.Category)
	}
	return nil
}

// Apply merges the update into t. Nil fields are left untouched.
func (in *TagUpdate) Apply(t *Tag) {
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Color != nil {
		t.Color = *in.Color
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
}
