// Package nps computes Net Promoter Score figures from survey responses.
//
// Every function here is pure. Scores are rounded half away from zero using
// exact integer arithmetic, so 12.5 becomes 13 and -12.5 becomes -13.
package nps

import "github.com/leondli/npsboard/internal/domain/entity"

// Class is the NPS bucket a single score falls into
type Class string

const (
	Promoter  Class = "promoter"
	Passive   Class = "passive"
	Detractor Class = "detractor"
)

// Classify buckets a 0..10 score: 9-10 promoter, 7-8 passive, 0-6 detractor
func Classify(score int) Class {
	switch {
	case score >= 9:
		return Promoter
	case score >= 7:
		return Passive
	default:
		return Detractor
	}
}

// Breakdown holds raw counts. Pool breakdowns with Add before calling Score;
// never average scores.
type Breakdown struct {
	Promoters  int `json:"promoters"`
	Passives   int `json:"passives"`
	Detractors int `json:"detractors"`
	Total      int `json:"total"`
}

// Add returns the pooled counts of b and other
func (b Breakdown) Add(other Breakdown) Breakdown {
	return Breakdown{
		Promoters:  b.Promoters + other.Promoters,
		Passives:   b.Passives + other.Passives,
		Detractors: b.Detractors + other.Detractors,
		Total:      b.Total + other.Total,
	}
}

// Score returns round((promoters - detractors) / total * 100), or 0 when
// there are no responses.
func (b Breakdown) Score() int {
	if b.Total == 0 {
		return 0
	}
	num := 100 * (b.Promoters - b.Detractors)
	neg := num < 0
	if neg {
		num = -num
	}
	q := (2*num + b.Total) / (2 * b.Total)
	if neg {
		return -q
	}
	return q
}

// TallyScores counts raw scores
func TallyScores(scores []int) Breakdown {
	var b Breakdown
	for _, s := range scores {
		b.Total++
		switch Classify(s) {
		case Promoter:
			b.Promoters++
		case Passive:
			b.Passives++
		default:
			b.Detractors++
		}
	}
	return b
}

// Tally counts the responses by class
func Tally(responses []entity.SurveyResponse) Breakdown {
	scores := make([]int, len(responses))
	for i, r := range responses {
		scores[i] = r.Score
	}
	return TallyScores(scores)
}

// Score is the NPS of a single response set
func Score(responses []entity.SurveyResponse) int {
	return Tally(responses).Score()
}

// Aggregate pools the responses of all surveys. Surveys without responses
// add nothing to either side of the ratio.
func Aggregate(surveys []entity.Survey) Breakdown {
	var b Breakdown
	for i := range surveys {
		b = b.Add(Tally(surveys[i].Responses))
	}
	return b
}

// Band labels a score the way the dashboard colours it
func Band(score int) string {
	switch {
	case score < 0:
		return "Needs Improvement"
	case score < 30:
		return "Fair"
	case score < 50:
		return "Good"
	case score < 70:
		return "Very Good"
	default:
		return "Excellent"
	}
}

// Distribution is a histogram of scores 0..10; out of range scores are ignored
func Distribution(responses []entity.SurveyResponse) [entity.MaxScore + 1]int {
	var hist [entity.MaxScore + 1]int
	for _, r := range responses {
		if r.Score >= entity.MinScore && r.Score <= entity.MaxScore {
			hist[r.Score]++
		}
	}
	return hist
}
