// Package catalog holds the static VIBE questionnaires: questions, categories,
// band advice and Herzberg profile advice for each respondent variant.
//
// Catalogs are parsed from embedded YAML once at process start and are never
// mutated afterwards. The scoring package reads them; nothing writes them.
package catalog

import (
	"errors"
	"strconv"
	"strings"
)

// ─── ENUMS ────────────────────────────────────────────────────────────────────

// Factor is the Herzberg tag carried by every question.
type Factor string

const (
	FactorMotivator Factor = "motivator"
	FactorHygiene   Factor = "hygiene"
)

// Band is the advice band derived from a category score.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Bands lists every band in ascending order.
var Bands = []Band{BandLow, BandMedium, BandHigh}

// Profile is one of the four Herzberg quadrants, formatted "<hygiene>-<motivator>".
type Profile string

const (
	ProfileLowLow   Profile = "low-low"
	ProfileLowHigh  Profile = "low-high"
	ProfileHighLow  Profile = "high-low"
	ProfileHighHigh Profile = "high-high"
)

// Profiles lists every quadrant.
var Profiles = []Profile{ProfileLowLow, ProfileLowHigh, ProfileHighLow, ProfileHighHigh}

// ErrUnknownVariant is returned by ByVariant for names other than
// "individual" and "manager".
var ErrUnknownVariant = errors.New("catalog: unknown variant")

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Question is a single Likert item.
type Question struct {
	ID       int    `yaml:"id" json:"id"`
	Text     string `yaml:"text" json:"text"`
	Category string `yaml:"category" json:"category"`
	Factor   Factor `yaml:"factor" json:"factor"`
}

// Category is a thematic grouping. Short and Color are presentation metadata
// and play no part in scoring.
type Category struct {
	Name   string          `yaml:"name" json:"name"`
	Short  string          `yaml:"short" json:"short"`
	Color  string          `yaml:"color" json:"color"`
	Advice map[Band]string `yaml:"advice" json:"-"`
}

// AdviceDetail is the static narrative attached to a Herzberg profile.
type AdviceDetail struct {
	Title          string   `yaml:"title" json:"title"`
	Subtitle       string   `yaml:"subtitle" json:"subtitle"`
	Interpretation []string `yaml:"interpretation" json:"interpretation"`
	Meaning        []string `yaml:"meaning" json:"meaning"`
	Priorities     []string `yaml:"priorities" json:"priorities"`
	Steps          []string `yaml:"steps" json:"steps"`
}

// SDTNeed maps one Self-Determination-Theory need onto catalog categories.
// The need score is the unweighted mean of its categories' averages.
type SDTNeed struct {
	Name        string            `yaml:"name" json:"name"`
	Color       string            `yaml:"color" json:"color"`
	Description string            `yaml:"description" json:"description"`
	Categories  []string          `yaml:"categories" json:"categories"`
	Tips        map[Band][]string `yaml:"tips" json:"-"`
}

// SDTProfile is the overall motivation profile picked by band.
type SDTProfile struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Advice      string `yaml:"advice" json:"advice"`
}

// SDTModel groups the SDT needs and their overall profiles.
type SDTModel struct {
	BandLabels map[Band]string     `yaml:"band_labels"`
	Needs      []SDTNeed           `yaml:"needs"`
	Profiles   map[Band]SDTProfile `yaml:"profiles"`
}

// Catalog is one complete questionnaire variant.
//
// YAML shape (see data/*.yaml):
//
//	variant: individual
//	key_prefix: q
//	profile_threshold: 3.0
//	fallback_advice: "..."
//	categories: [{name, short, color, advice: {low, medium, high}}]
//	questions:  [{id, category, factor, text}]
//	profiles:   {low-low: {...}, low-high: {...}, ...}
//	sdt:        {band_labels, needs, profiles}
type Catalog struct {
	Variant          string                   `yaml:"variant"`
	KeyPrefix        string                   `yaml:"key_prefix"`
	ProfileThreshold float64                  `yaml:"profile_threshold"`
	FallbackAdvice   string                   `yaml:"fallback_advice"`
	Categories       []Category               `yaml:"categories"`
	Questions        []Question               `yaml:"questions"`
	Profiles         map[Profile]AdviceDetail `yaml:"profiles"`
	SDT              SDTModel                 `yaml:"sdt"`

	categoryIndex map[string]int // name → position in Categories
}

// ─── LOOKUPS ──────────────────────────────────────────────────────────────────

// Key returns the answer key for a question id, e.g. "q7" or "mq12".
func (c *Catalog) Key(id int) string {
	return c.KeyPrefix + strconv.Itoa(id)
}

// Lookup resolves an answer key to its question. Keys without the catalog
// prefix, with a non-numeric suffix, or naming an unknown id report false.
func (c *Catalog) Lookup(key string) (Question, bool) {
	rest, ok := strings.CutPrefix(key, c.KeyPrefix)
	if !ok {
		return Question{}, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return Question{}, false
	}
	// ids are dense and 1-based, enforced by Validate.
	if id < 1 || id > len(c.Questions) {
		return Question{}, false
	}
	return c.Questions[id-1], true
}

// CategoryNames returns category names in declaration order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// Category returns the named category.
func (c *Catalog) Category(name string) (Category, bool) {
	idx, ok := c.categoryIndex[name]
	if !ok {
		return Category{}, false
	}
	return c.Categories[idx], true
}
