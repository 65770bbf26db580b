// Package idgen generates the short, prefixed identifiers used for every
// dashboard entity (tag-xxxx, widget-xxxx, ...).
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes
const (
	PrefixTag        = "tag-"
	PrefixWidget     = "widget-"
	PrefixSurvey     = "survey-"
	PrefixResponse   = "response-"
	PrefixRespondent = "respondent-"
)

// Alphabet is the character set of the random part of an id.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters after the prefix.
const Length = 12

// New returns prefix followed by a random nanoid.
func New(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
