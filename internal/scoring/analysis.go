package scoring

import (
	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
)

// CategoryResult is a category score with its band and advice text.
type CategoryResult struct {
	Category string       `json:"category"`
	Short    string       `json:"short"`
	Color    string       `json:"color"`
	Average  float64      `json:"average"`
	Band     catalog.Band `json:"band"`
	Advice   string       `json:"advice"`
}

// Analysis bundles everything the engine derives from a single answer set.
type Analysis struct {
	Variant       string               `json:"variant"`
	Answered      int                  `json:"answered"`
	Categories    []CategoryResult     `json:"categories"`
	Factors       Factors              `json:"factors"`
	Threshold     float64              `json:"threshold"`
	Profile       catalog.Profile      `json:"profile"`
	ProfileAdvice catalog.AdviceDetail `json:"profile_advice"`
	SDT           SDTAnalysis          `json:"sdt"`
}

// Analyze runs the full engine against c, classifying the profile with the
// catalog's own threshold.
func Analyze(c *catalog.Catalog, answers AnswerSet) Analysis {
	scores := CategoryScores(c, answers)
	factors := FactorScores(c, answers)
	profile := ClassifyProfile(factors.Hygiene, factors.Motivator, c.ProfileThreshold)
	detail, _ := SelectProfileAdvice(c, profile)

	results := make([]CategoryResult, len(scores))
	for i, s := range scores {
		cat := c.Categories[i]
		results[i] = CategoryResult{
			Category: s.Category,
			Short:    cat.Short,
			Color:    cat.Color,
			Average:  s.Average,
			Band:     BandFor(s.Average),
			Advice:   SelectAdvice(c, s.Category, s.Average),
		}
	}

	return Analysis{
		Variant:       c.Variant,
		Answered:      countAnswered(c, answers),
		Categories:    results,
		Factors:       factors,
		Threshold:     c.ProfileThreshold,
		Profile:       profile,
		ProfileAdvice: detail,
		SDT:           SDT(c, scores),
	}
}

func countAnswered(c *catalog.Catalog, answers AnswerSet) int {
	n := 0
	for key := range answers {
		if _, ok := c.Lookup(key); ok {
			n++
		}
	}
	return n
}
