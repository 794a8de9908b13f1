// Package scoring implements the VIBE scoring engine: category means, the
// hygiene/motivator factor pair, Herzberg profile classification and static
// advice selection. It is intentionally side-effect free: it imports only the
// catalog package and can be tested without a database.
package scoring

import (
	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
)

// ─── CONSTANTS ────────────────────────────────────────────────────────────────

// Band cutpoints for advice selection. Unrelated to the profile threshold.
const (
	bandMediumFrom = 2.5 // score <  2.5 → low
	bandHighFrom   = 3.5 // score >= 3.5 → high
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// AnswerSet maps an answer key ("q3", "mq12") to a 1–5 Likert response.
// Keys that do not resolve against the catalog are ignored.
type AnswerSet map[string]int

// CategoryScore is the mean response for one category. Average is 0 when the
// category has no answers.
type CategoryScore struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
}

// Scores is one CategoryScore per catalog category, in declaration order.
type Scores []CategoryScore

// Map returns the scores keyed by category name.
func (s Scores) Map() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, cs := range s {
		m[cs.Category] = cs.Average
	}
	return m
}

// Factors is the two-factor score pair.
type Factors struct {
	Hygiene   float64 `json:"hygiene_score"`
	Motivator float64 `json:"motivator_score"`
}

// ─── ACCUMULATION ─────────────────────────────────────────────────────────────

type bucket struct {
	sum   float64
	count int
}

func (b bucket) mean() float64 {
	if b.count == 0 {
		return 0
	}
	return b.sum / float64(b.count)
}

// tally accumulates one answer set against a catalog. Buckets for categories
// are indexed by declaration position so results come out in catalog order.
type tally struct {
	categories []bucket
	hygiene    bucket
	motivator  bucket
}

func newTally(c *catalog.Catalog, answers AnswerSet) tally {
	t := tally{categories: make([]bucket, len(c.Categories))}
	pos := make(map[string]int, len(c.Categories))
	for i, cat := range c.Categories {
		pos[cat.Name] = i
	}

	for key, value := range answers {
		q, ok := c.Lookup(key)
		if !ok {
			continue
		}
		v := float64(value)

		idx := pos[q.Category]
		t.categories[idx].sum += v
		t.categories[idx].count++

		// Every question carries exactly one factor tag.
		if q.Factor == catalog.FactorHygiene {
			t.hygiene.sum += v
			t.hygiene.count++
		} else {
			t.motivator.sum += v
			t.motivator.count++
		}
	}
	return t
}

// ─── CORE FUNCTIONS ───────────────────────────────────────────────────────────

// CategoryScores computes the mean response per category over the answers
// that resolve against c. Categories without answers score 0. No rounding is
// applied.
func CategoryScores(c *catalog.Catalog, answers AnswerSet) Scores {
	t := newTally(c, answers)
	out := make(Scores, len(c.Categories))
	for i, cat := range c.Categories {
		out[i] = CategoryScore{Category: cat.Name, Average: t.categories[i].mean()}
	}
	return out
}

// FactorScores computes the hygiene and motivator means over the whole
// catalog. An empty group scores 0.
func FactorScores(c *catalog.Catalog, answers AnswerSet) Factors {
	t := newTally(c, answers)
	return Factors{Hygiene: t.hygiene.mean(), Motivator: t.motivator.mean()}
}

// ClassifyProfile places a factor pair in one of the four Herzberg quadrants.
// A score equal to threshold counts as high.
func ClassifyProfile(hygiene, motivator, threshold float64) catalog.Profile {
	level := func(score float64) string {
		if score >= threshold {
			return "high"
		}
		return "low"
	}
	return catalog.Profile(level(hygiene) + "-" + level(motivator))
}

// BandFor maps a category score to its advice band.
func BandFor(score float64) catalog.Band {
	switch {
	case score < bandMediumFrom:
		return catalog.BandLow
	case score < bandHighFrom:
		return catalog.BandMedium
	default:
		return catalog.BandHigh
	}
}

// SelectAdvice returns the band advice for a category, or the catalog's
// fallback text when the category is unknown.
func SelectAdvice(c *catalog.Catalog, category string, score float64) string {
	cat, ok := c.Category(category)
	if !ok {
		return c.FallbackAdvice
	}
	if text := cat.Advice[BandFor(score)]; text != "" {
		return text
	}
	return c.FallbackAdvice
}

// SelectProfileAdvice returns the static narrative for a profile.
func SelectProfileAdvice(c *catalog.Catalog, profile catalog.Profile) (catalog.AdviceDetail, bool) {
	d, ok := c.Profiles[profile]
	return d, ok
}
