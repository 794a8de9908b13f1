package scoring_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
	"github.com/nyashahama/vibe-scan-backend/internal/scoring"
)

// ─── AggregateCategoryAverages ────────────────────────────────────────────────

func TestAggregateCategoryAverages_MeanOfMeans(t *testing.T) {
	c := catalog.Individual()
	sets := []scoring.AnswerSet{
		{"q1": 2},                   // V&A mean 2
		{"q1": 4, "q2": 4, "q3": 4}, // V&A mean 4
		{"q1": 1, "q2": 5},          // V&A mean 3
	}

	got := scoring.AggregateCategoryAverages(c, sets)
	assert.Equal(t, map[string]float64{"Voice & Autonomy": 3.0}, got)
}

func TestAggregateCategoryAverages_NotPooled(t *testing.T) {
	c := catalog.Individual()
	// Pooled over all answers this would be (1 + 5*6)/7; mean of means is 3.
	sets := []scoring.AnswerSet{
		{"q1": 1},
		{"q1": 5, "q2": 5, "q3": 5, "q4": 5, "q5": 5, "q6": 5},
	}
	got := scoring.AggregateCategoryAverages(c, sets)
	assert.Equal(t, 3.0, got["Voice & Autonomy"])
}

func TestAggregateCategoryAverages_OnlyContributorsCount(t *testing.T) {
	c := catalog.Individual()
	sets := []scoring.AnswerSet{
		{"q1": 4, "q8": 2},
		{"q1": 2},
		{},
	}
	got := scoring.AggregateCategoryAverages(c, sets)

	assert.Equal(t, 3.0, got["Voice & Autonomy"])
	assert.Equal(t, 2.0, got["Impact & Purpose"])
	_, ok := got["Bold Leadership"]
	assert.False(t, ok, "unanswered categories are omitted")
}

func TestAggregateCategoryAverages_Empty(t *testing.T) {
	assert.Empty(t, scoring.AggregateCategoryAverages(catalog.Manager(), nil))
}

func TestAggregateFactors(t *testing.T) {
	c := catalog.Individual()
	hygieneKey, motivatorKey := "", ""
	for _, q := range c.Questions {
		switch {
		case q.Factor == catalog.FactorHygiene && hygieneKey == "":
			hygieneKey = c.Key(q.ID)
		case q.Factor == catalog.FactorMotivator && motivatorKey == "":
			motivatorKey = c.Key(q.ID)
		}
	}
	require.NotEmpty(t, hygieneKey)
	require.NotEmpty(t, motivatorKey)

	f := scoring.AggregateFactors(c, []scoring.AnswerSet{
		{hygieneKey: 2, motivatorKey: 5},
		{hygieneKey: 4},
	})
	assert.Equal(t, 3.0, f.Hygiene)
	assert.Equal(t, 5.0, f.Motivator)
}

// ─── GenerateTeamAdvice ───────────────────────────────────────────────────────

const (
	managerHigherMarker = "positieve bias bij leidinggevenden"
	managerLowerMarker  = "Medewerkers ervaren meer kwaliteit"
)

func TestGenerateTeamAdvice_ManagerHigher(t *testing.T) {
	advice := scoring.GenerateTeamAdvice(
		map[string]float64{"X": 3.5},
		map[string]float64{"X": 4.5},
	)
	require.Len(t, advice, 1)
	assert.True(t, strings.HasPrefix(advice[0], "X: "))
	assert.Contains(t, advice[0], managerHigherMarker)
}

func TestGenerateTeamAdvice_ManagerLower(t *testing.T) {
	advice := scoring.GenerateTeamAdvice(
		map[string]float64{"X": 4.5},
		map[string]float64{"X": 3.5},
	)
	require.Len(t, advice, 1)
	assert.True(t, strings.HasPrefix(advice[0], "X: "))
	assert.Contains(t, advice[0], managerLowerMarker)
}

func TestGenerateTeamAdvice_GapMustExceedHalf(t *testing.T) {
	advice := scoring.GenerateTeamAdvice(
		map[string]float64{"X": 3.0},
		map[string]float64{"X": 3.5},
	)
	require.Len(t, advice, 1)
	assert.NotContains(t, advice[0], "X:")
}

func TestGenerateTeamAdvice_GapsFollowCatalogOrder(t *testing.T) {
	advice := scoring.GenerateTeamAdvice(
		map[string]float64{"Voice & Autonomy": 3.0, "Bold Leadership": 2.0, "Reflectie": 3.0, "Impact & Purpose": 3.0},
		map[string]float64{"Voice & Autonomy": 3.6, "Bold Leadership": 4.0, "Reflectie": 2.0, "Impact & Purpose": 3.1},
	)
	require.Len(t, advice, 3)
	assert.True(t, strings.HasPrefix(advice[0], "Voice & Autonomy: "))
	assert.True(t, strings.HasPrefix(advice[1], "Bold Leadership: "))
	assert.True(t, strings.HasPrefix(advice[2], "Reflectie: "))
	assert.Contains(t, advice[2], managerLowerMarker)
}

func TestGenerateTeamAdviceInOrder_UnlistedCategoriesLastByName(t *testing.T) {
	advice := scoring.GenerateTeamAdviceInOrder(
		[]string{"C", "A"},
		map[string]float64{"A": 3.0, "B": 2.0, "C": 3.0, "D": 2.0},
		map[string]float64{"A": 3.6, "B": 4.0, "C": 2.0, "D": 4.0},
	)
	require.Len(t, advice, 4)
	assert.True(t, strings.HasPrefix(advice[0], "C: "))
	assert.True(t, strings.HasPrefix(advice[1], "A: "))
	assert.True(t, strings.HasPrefix(advice[2], "B: "))
	assert.True(t, strings.HasPrefix(advice[3], "D: "))
}

func TestGenerateTeamAdvice_OverallFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		employee map[string]float64
		manager  map[string]float64
		want     string
	}{
		{
			"both low",
			map[string]float64{"A": 2.5, "B": 2.9},
			map[string]float64{"A": 2.6, "B": 2.8},
			"Team heeft gedeelde werkpunten",
		},
		{
			"employees low without manager data",
			map[string]float64{"A": 2.0},
			nil,
			"Team heeft gedeelde werkpunten",
		},
		{
			"both high",
			map[string]float64{"A": 3.5, "B": 4.0},
			map[string]float64{"A": 3.8, "B": 4.2},
			"Team functioneert goed",
		},
		{
			"mixed",
			map[string]float64{"A": 3.2},
			map[string]float64{"A": 3.3},
			"Bespreek de resultaten in teamverband",
		},
		{
			"employees high but managers low",
			map[string]float64{"A": 3.6, "B": 3.6},
			map[string]float64{"C": 2.0},
			"Bespreek de resultaten in teamverband",
		},
		{
			"no data",
			nil,
			nil,
			"Bespreek de resultaten in teamverband",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice := scoring.GenerateTeamAdvice(tt.employee, tt.manager)
			require.Len(t, advice, 1)
			assert.True(t, strings.HasPrefix(advice[0], tt.want), advice[0])
		})
	}
}
