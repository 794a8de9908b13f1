package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
)

// ─── EMBEDDED CATALOGS ────────────────────────────────────────────────────────

func TestIndividualCatalog_Shape(t *testing.T) {
	c := catalog.Individual()

	assert.Equal(t, "individual", c.Variant)
	assert.Equal(t, "q", c.KeyPrefix)
	assert.Equal(t, 3.0, c.ProfileThreshold)
	assert.Len(t, c.Questions, 29)
	assert.Equal(t, []string{
		"Voice & Autonomy",
		"Impact & Purpose",
		"Bold Leadership",
		"Recognition & Reward",
		"Reflectie",
	}, c.CategoryNames())
}

func TestManagerCatalog_Shape(t *testing.T) {
	c := catalog.Manager()

	assert.Equal(t, "manager", c.Variant)
	assert.Equal(t, "mq", c.KeyPrefix)
	assert.Equal(t, 3.5, c.ProfileThreshold)
	assert.Len(t, c.Questions, 30)
	_, ok := c.Category("Empathy & Recognition")
	assert.True(t, ok)
	_, ok = c.Category("Recognition & Reward")
	assert.False(t, ok)
}

func TestCatalogs_EveryCategoryHasQuestions(t *testing.T) {
	for _, c := range []*catalog.Catalog{catalog.Individual(), catalog.Manager()} {
		counts := map[string]int{}
		for _, q := range c.Questions {
			counts[q.Category]++
		}
		for _, name := range c.CategoryNames() {
			assert.Positive(t, counts[name], "%s: category %q has no questions", c.Variant, name)
		}
	}
}

func TestIndividualCatalog_VoiceAndAutonomyIsQ1ToQ7(t *testing.T) {
	c := catalog.Individual()
	for id := 1; id <= 7; id++ {
		q, ok := c.Lookup(c.Key(id))
		require.True(t, ok)
		assert.Equal(t, "Voice & Autonomy", q.Category)
	}
	q, ok := c.Lookup("q8")
	require.True(t, ok)
	assert.NotEqual(t, "Voice & Autonomy", q.Category)
}

func TestByVariant(t *testing.T) {
	c, err := catalog.ByVariant("individual")
	require.NoError(t, err)
	assert.Same(t, catalog.Individual(), c)

	c, err = catalog.ByVariant("manager")
	require.NoError(t, err)
	assert.Same(t, catalog.Manager(), c)

	_, err = catalog.ByVariant("executive")
	assert.True(t, errors.Is(err, catalog.ErrUnknownVariant))
}

// ─── Lookup ───────────────────────────────────────────────────────────────────

func TestLookup(t *testing.T) {
	c := catalog.Individual()

	tests := []struct {
		key    string
		wantID int
		wantOK bool
	}{
		{"q1", 1, true},
		{"q29", 29, true},
		{"q0", 0, false},
		{"q30", 0, false},
		{"mq1", 0, false}, // manager key against the individual catalog
		{"q", 0, false},
		{"qx", 0, false},
		{"", 0, false},
		{"1", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			q, ok := c.Lookup(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, q.ID)
			}
		})
	}
}

// ─── Parse / Validate ─────────────────────────────────────────────────────────

const minimalYAML = `
variant: tiny
key_prefix: t
profile_threshold: 3.0
fallback_advice: "fallback"
categories:
  - name: A
    short: a
    color: "#000"
    advice: {low: "a-low", medium: "a-mid", high: "a-high"}
questions:
  - {id: 1, category: A, factor: hygiene, text: "one"}
  - {id: 2, category: A, factor: motivator, text: "two"}
profiles:
  low-low: {title: LL}
  low-high: {title: LH}
  high-low: {title: HL}
  high-high: {title: HH}
`

func TestParse_Minimal(t *testing.T) {
	c, err := catalog.Parse([]byte(minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, "t1", c.Key(1))
	cat, ok := c.Category("A")
	require.True(t, ok)
	assert.Equal(t, "a-mid", cat.Advice[catalog.BandMedium])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantMsg string
	}{
		{
			"empty document",
			func(string) string { return "   " },
			"empty document",
		},
		{
			"unknown field",
			func(s string) string { return s + "\nextra: true\n" },
			"decode",
		},
		{
			"threshold out of range",
			func(s string) string { return strings.Replace(s, "profile_threshold: 3.0", "profile_threshold: 6", 1) },
			"profile_threshold",
		},
		{
			"non-dense ids",
			func(s string) string { return strings.Replace(s, "{id: 2,", "{id: 3,", 1) },
			"id 3, want 2",
		},
		{
			"unknown category",
			func(s string) string { return strings.Replace(s, "{id: 2, category: A", "{id: 2, category: B", 1) },
			`unknown category "B"`,
		},
		{
			"unknown factor",
			func(s string) string { return strings.Replace(s, "factor: motivator", "factor: neutral", 1) },
			"unknown factor",
		},
		{
			"missing band advice",
			func(s string) string { return strings.Replace(s, `, high: "a-high"`, "", 1) },
			"missing high advice",
		},
		{
			"missing profile",
			func(s string) string { return strings.Replace(s, "  high-high: {title: HH}\n", "", 1) },
			`missing advice for profile "high-high"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.mutate(minimalYAML)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
