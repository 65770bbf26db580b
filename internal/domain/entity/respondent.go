package entity

import "fmt"

// UnknownRespondent is shown for responses whose respondent was removed
const UnknownRespondent = "Unknown"

// Respondent is a person answering surveys, tagged with user tags
type Respondent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Tags  TagSet `json:"tags"`
}

// RespondentCreate represents the data needed to create a respondent
type RespondentCreate struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Tags  []string `json:"tags"`
}

// RespondentUpdate represents the data that can be updated
type RespondentUpdate struct {
	Name  *string   `json:"name"`
	Email *string   `json:"email"`
	Tags  *[]string `json:"tags"`
}

// Validate checks a new respondent
func (in *RespondentCreate) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("respondent name is required")
	}
	return nil
}

// Validate checks the fields present in the update
func (in *RespondentUpdate) Validate() error {
	if in.Name != nil && *in.Name == "" {
		return fmt.Errorf("respondent name cannot be empty")
	}
	return nil
}

// Apply merges the update into r. Nil fields are left untouched.
func (in *RespondentUpdate) Apply(r *Respondent) {
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Email != nil {
		r.Email = *in.Email
	}
	if in.Tags != nil {
		r.Tags = NewTagSet(*in.Tags...)
	}
}

// Clone returns a deep copy
func (r *Respondent) Clone() *Respondent {
	out := *r
	out.Tags = r.Tags.Clone()
	return &out
}
