// Package seed loads a dashboard description from TOML.
//
// Records refer to each other by local keys. Ids are allocated by the
// dashboard when the file is applied, so the same file can be loaded into
// any number of dashboards.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/leondli/npsboard/internal/domain/entity"
)

// File is the decoded seed document
type File struct {
	Tags        []Tag        `toml:"tags"`
	Respondents []Respondent `toml:"respondents"`
	Surveys     []Survey     `toml:"surveys"`
	Widgets     []Widget     `toml:"widgets"`
}

type Tag struct {
	Key      string             `toml:"key"`
	Name     string             `toml:"name"`
	Color    entity.TagColor    `toml:"color"`
	Category entity.TagCategory `toml:"category"`
}

type Respondent struct {
	Key   string   `toml:"key"`
	Name  string   `toml:"name"`
	Email string   `toml:"email"`
	Tags  []string `toml:"tags"`
}

type Survey struct {
	Title       string     `toml:"title"`
	Description string     `toml:"description"`
	CreatedAt   time.Time  `toml:"created_at"`
	Tags        []string   `toml:"tags"`
	Responses   []Response `toml:"responses"`
}

type Response struct {
	Score      int       `toml:"score"`
	Feedback   string    `toml:"feedback"`
	Respondent string    `toml:"respondent"`
	CreatedAt  time.Time `toml:"created_at"`
}

type Widget struct {
	Title    string            `toml:"title"`
	Type     entity.WidgetType `toml:"type"`
	Size     entity.WidgetSize `toml:"size"`
	Tags     []string          `toml:"tags"`
	Data     string            `toml:"data"` // JSON payload, stored as is
	Position *entity.Position  `toml:"position"`
}

// Target is what a seed file is applied to
type Target interface {
	AddTag(ctx context.Context, input *entity.TagCreate) (*entity.Tag, error)
	AddRespondent(ctx context.Context, input *entity.RespondentCreate) (*entity.Respondent, error)
	AddSurvey(ctx context.Context, input *entity.SurveyCreate) (*entity.Survey, error)
	RecomputeScore(ctx context.Context, id string) (*entity.Survey, error)
	AddWidget(ctx context.Context, input *entity.WidgetCreate) (*entity.Widget, error)
}

// Result counts what was created
type Result struct {
	Tags        int `json:"tags"`
	Respondents int `json:"respondents"`
	Surveys     int `json:"surveys"`
	Responses   int `json:"responses"`
	Widgets     int `json:"widgets"`
}

// Decode reads a seed document. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown seed keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// LoadFile decodes and validates the seed file at path
func LoadFile(path string) (*File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("reading seed %s: unknown key %s", path, undecoded[0])
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks keys are unique, references resolve and values are in range.
func (f *File) Validate() error {
	tagKeys := make(map[string]bool, len(f.Tags))
	for i, t := range f.Tags {
		if t.Key == "" {
			return fmt.Errorf("tags[%d]: key is required", i)
		}
		if tagKeys[t.Key] {
			return fmt.Errorf("tags[%d]: duplicate key %q", i, t.Key)
		}
		tagKeys[t.Key] = true
		in := entity.TagCreate{Name: t.Name, Color: t.Color, Category: t.Category}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("tag %q: %w", t.Key, err)
		}
	}

	checkTags := func(where string, keys []string) error {
		for _, k := range keys {
			if !tagKeys[k] {
				return fmt.Errorf("%s: unknown tag %q", where, k)
			}
		}
		return nil
	}

	respondentKeys := make(map[string]bool, len(f.Respondents))
	for i, r := range f.Respondents {
		if r.Key == "" {
			return fmt.Errorf("respondents[%d]: key is required", i)
		}
		if respondentKeys[r.Key] {
			return fmt.Errorf("respondents[%d]: duplicate key %q", i, r.Key)
		}
		respondentKeys[r.Key] = true
		if r.Name == "" {
			return fmt.Errorf("respondent %q: name is required", r.Key)
		}
		if err := checkTags("respondent "+r.Key, r.Tags); err != nil {
			return err
		}
	}

	for i, s := range f.Surveys {
		where := fmt.Sprintf("surveys[%d]", i)
		if s.Title == "" {
			return fmt.Errorf("%s: title is required", where)
		}
		if err := checkTags(where, s.Tags); err != nil {
			return err
		}
		for j, r := range s.Responses {
			if r.Score < entity.MinScore || r.Score > entity.MaxScore {
				return fmt.Errorf("%s.responses[%d]: score %d out of range", where, j, r.Score)
			}
			if r.Respondent != "" && !respondentKeys[r.Respondent] {
				return fmt.Errorf("%s.responses[%d]: unknown respondent %q", where, j, r.Respondent)
			}
		}
	}

	for i, w := range f.Widgets {
		where := fmt.Sprintf("widgets[%d]", i)
		in := entity.WidgetCreate{Title: w.Title, Type: w.Type, Size: w.Size}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		if err := checkTags(where, w.Tags); err != nil {
			return err
		}
		if w.Data != "" && !json.Valid([]byte(w.Data)) {
			return fmt.Errorf("%s: data is not valid JSON", where)
		}
	}
	return nil
}

// Apply creates every record in target, tags and respondents first.
// Each survey's score cache is filled once its responses are in.
func (f *File) Apply(ctx context.Context, target Target) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var res Result
	tagIDs := make(map[string]string, len(f.Tags))
	for _, t := range f.Tags {
		created, err := target.AddTag(ctx, &entity.TagCreate{Name: t.Name, Color: t.Color, Category: t.Category})
		if err != nil {
			return &res, fmt.Errorf("tag %q: %w", t.Key, err)
		}
		tagIDs[t.Key] = created.ID
		res.Tags++
	}
	resolve := func(keys []string) []string {
		ids := make([]string, 0, len(keys))
		for _, k := range keys {
			ids = append(ids, tagIDs[k])
		}
		return ids
	}

	respondentIDs := make(map[string]string, len(f.Respondents))
	for _, r := range f.Respondents {
		created, err := target.AddRespondent(ctx, &entity.RespondentCreate{Name: r.Name, Email: r.Email, Tags: resolve(r.Tags)})
		if err != nil {
			return &res, fmt.Errorf("respondent %q: %w", r.Key, err)
		}
		respondentIDs[r.Key] = created.ID
		res.Respondents++
	}

	for _, s := range f.Surveys {
		in := &entity.SurveyCreate{
			Title:       s.Title,
			Description: s.Description,
			CreatedAt:   s.CreatedAt,
			Tags:        resolve(s.Tags),
		}
		for _, r := range s.Responses {
			in.Responses = append(in.Responses, entity.ResponseCreate{
				Score:        r.Score,
				Feedback:     r.Feedback,
				RespondentID: respondentIDs[r.Respondent],
				CreatedAt:    r.CreatedAt,
			})
		}
		created, err := target.AddSurvey(ctx, in)
		if err != nil {
			return &res, fmt.Errorf("survey %q: %w", s.Title, err)
		}
		if _, err := target.RecomputeScore(ctx, created.ID); err != nil {
			return &res, fmt.Errorf("survey %q: %w", s.Title, err)
		}
		res.Surveys++
		res.Responses += len(s.Responses)
	}

	for _, w := range f.Widgets {
		in := &entity.WidgetCreate{
			Title:    w.Title,
			Type:     w.Type,
			Size:     w.Size,
			Tags:     resolve(w.Tags),
			Position: w.Position,
		}
		if w.Data != "" {
			in.Data = json.RawMessage(w.Data)
		}
		if _, err := target.AddWidget(ctx, in); err != nil {
			return &res, fmt.Errorf("widget %q: %w", w.Title, err)
		}
		res.Widgets++
	}
	return &res, nil
}
