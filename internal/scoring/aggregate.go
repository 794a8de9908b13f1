package scoring

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
)

// ─── CONSTANTS ────────────────────────────────────────────────────────────────

const (
	perceptionGap    = 0.5 // |manager − employee| above this is reported
	teamStrugglingLT = 3.0 // overall mean below this on both sides
	teamHealthyGE    = 3.5 // overall mean at or above this on both sides
)

const (
	adviceManagerHigher = "%s: Er is een positieve bias bij leidinggevenden. Verwachtingen zijn hoger dan de ervaring van medewerkers. Focus op gesprekken en realiteitstoetsing."
	adviceManagerLower  = "%s: Medewerkers ervaren meer kwaliteit dan leidinggevenden inschatten. Versterk dit door successen te delen en alignment te zoeken."
	adviceTeamLow       = "Team heeft gedeelde werkpunten. Start met prioriteiten stellen en basisvoorwaarden verbeteren."
	adviceTeamHigh      = "Team functioneert goed. Focus op groei, innovatie en duurzame betrokkenheid."
	adviceTeamDefault   = "Bespreek de resultaten in teamverband en identificeer gezamenlijke prioriteiten."
)

// ─── AGGREGATION ──────────────────────────────────────────────────────────────

// AggregateCategoryAverages averages per-respondent category means across
// sets (mean of means): each respondent weighs the same regardless of how
// many questions they answered.
//
// A respondent contributes to a category only if they answered at least one
// question in it. Categories nobody answered are omitted from the result.
func AggregateCategoryAverages(c *catalog.Catalog, sets []AnswerSet) map[string]float64 {
	totals := make([]bucket, len(c.Categories))
	for _, answers := range sets {
		t := newTally(c, answers)
		for i, b := range t.categories {
			if b.count == 0 {
				continue
			}
			totals[i].sum += b.mean()
			totals[i].count++
		}
	}

	out := make(map[string]float64, len(c.Categories))
	for i, cat := range c.Categories {
		if totals[i].count > 0 {
			out[cat.Name] = totals[i].mean()
		}
	}
	return out
}

// AggregateFactors is the mean-of-means counterpart of FactorScores, with the
// same contribution rule as AggregateCategoryAverages. Empty groups score 0.
func AggregateFactors(c *catalog.Catalog, sets []AnswerSet) Factors {
	var hygiene, motivator bucket
	for _, answers := range sets {
		t := newTally(c, answers)
		if t.hygiene.count > 0 {
			hygiene.sum += t.hygiene.mean()
			hygiene.count++
		}
		if t.motivator.count > 0 {
			motivator.sum += t.motivator.mean()
			motivator.count++
		}
	}
	return Factors{Hygiene: hygiene.mean(), Motivator: motivator.mean()}
}

// ─── TEAM ADVICE ──────────────────────────────────────────────────────────────

// GenerateTeamAdvice compares employee experience with manager expectations,
// reporting gaps in the individual catalog's category order.
func GenerateTeamAdvice(employeeAvg, managerAvg map[string]float64) []string {
	return GenerateTeamAdviceInOrder(catalog.Individual().CategoryNames(), employeeAvg, managerAvg)
}

// GenerateTeamAdviceInOrder is GenerateTeamAdvice with an explicit category
// order.
//
// Categories present in both maps whose gap exceeds 0.5 produce a directional
// perception-gap message. Messages follow order; categories missing from order
// come last, sorted by name. Without any gap message, one of two overall
// messages is chosen from the unweighted mean of each side's category
// averages. If neither applies, a generic message is returned. The result is
// never empty.
func GenerateTeamAdviceInOrder(order []string, employeeAvg, managerAvg map[string]float64) []string {
	var advice []string
	for _, cat := range adviceOrder(order, employeeAvg) {
		mgr, ok := managerAvg[cat]
		if !ok {
			continue
		}
		diff := mgr - employeeAvg[cat]
		switch {
		case diff > perceptionGap:
			advice = append(advice, fmt.Sprintf(adviceManagerHigher, cat))
		case diff < -perceptionGap:
			advice = append(advice, fmt.Sprintf(adviceManagerLower, cat))
		}
	}
	if len(advice) > 0 {
		return advice
	}

	if len(employeeAvg) > 0 {
		emp := meanOf(employeeAvg)
		mgr, hasMgr := math.NaN(), len(managerAvg) > 0
		if hasMgr {
			mgr = meanOf(managerAvg)
		}
		switch {
		case emp < teamStrugglingLT && (!hasMgr || mgr < teamStrugglingLT):
			return []string{adviceTeamLow}
		case emp >= teamHealthyGE && (!hasMgr || mgr >= teamHealthyGE):
			return []string{adviceTeamHigh}
		}
	}

	return []string{adviceTeamDefault}
}

// adviceOrder lists the keys of employeeAvg: those named in order first, in
// that order, then the rest by name.
func adviceOrder(order []string, employeeAvg map[string]float64) []string {
	out := make([]string, 0, len(employeeAvg))
	for _, cat := range order {
		if _, ok := employeeAvg[cat]; ok && !slices.Contains(out, cat) {
			out = append(out, cat)
		}
	}
	var rest []string
	for cat := range employeeAvg {
		if !slices.Contains(out, cat) {
			rest = append(rest, cat)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func meanOf(m map[string]float64) float64 {
	if len(m) == 0 {
		return 0
	}
	var total float64
	for _, v := range m {
		total += v
	}
	return total / float64(len(m))
}
