package entity

import (
	"fmt"
	"time"
)

// Score bounds of an NPS answer
const (
	MinScore = 0
	MaxScore = 10
)

// SurveyResponse is one answer to an NPS survey
type SurveyResponse struct {
	ID           string    `json:"id"`
	SurveyID     string    `json:"surveyId"`
	Score        int       `json:"score"`
	Feedback     string    `json:"feedback,omitempty"`
	RespondentID string    `json:"respondentId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Survey groups responses under a title and a set of survey tags.
// NpsScore is a cache: it is cleared whenever Responses change and only
// filled again by an explicit recompute.
type Survey struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	Tags        TagSet           `json:"tags"`
	Responses   []SurveyResponse `json:"responses"`
	NpsScore    *int             `json:"npsScore,omitempty"`
}

// ResponseCreate represents the data needed to record a response
type ResponseCreate struct {
	Score        int       `json:"score"`
	Feedback     string    `json:"feedback"`
	RespondentID string    `json:"respondentId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SurveyCreate represents the data needed to create a survey
type SurveyCreate struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
	Tags        []string         `json:"tags"`
	Responses   []ResponseCreate `json:"responses"`
}

// SurveyUpdate represents the data that can be updated
type SurveyUpdate struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	CreatedAt   *time.Time        `json:"createdAt"`
	Tags        *[]string         `json:"tags"`
	Responses   *[]ResponseCreate `json:"responses"`
}

// Validate checks a response score
func (in *ResponseCreate) Validate() error {
	if in.Score < MinScore || in.Score > MaxScore {
		return fmt.Errorf("score %d outside %d..%d", in.Score, MinScore, MaxScore)
	}
	return nil
}

// Validate checks a new survey and its initial responses
func (in *SurveyCreate) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("survey title is required")
	}
	for i := range in.Responses {
		if err := in.Responses[i].Validate(); err != nil {
			return fmt.Errorf("response %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks the fields present in the update
func (in *SurveyUpdate) Validate() error {
	if in.Title != nil && *in.Title == "" {
		return fmt.Errorf("survey title cannot be empty")
	}
	if in.Responses != nil {
		for i := range *in.Responses {
			if err := (*in.Responses)[i].Validate(); err != nil {
				return fmt.Errorf("response %d: %w", i, err)
			}
		}
	}
	return nil
}

// ResponseCount returns the number of responses
func (s *Survey) ResponseCount() int {
	return len(s.Responses)
}

// Clone returns a deep copy so callers cannot mutate stored state
func (s *Survey) Clone() *Survey {
	out := *s
	out.Tags = s.Tags.Clone()
	out.Responses = make([]SurveyResponse, len(s.Responses))
	copy(out.Responses, s.Responses)
	if s.NpsScore != nil {
		v := *s.NpsScore
		out.NpsScore = &v
	}
	return &out
}
