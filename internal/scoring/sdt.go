package scoring

import (
	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
)

// NeedScore is one Self-Determination-Theory need, scored from its mapped
// categories.
type NeedScore struct {
	Name        string       `json:"name"`
	Color       string       `json:"color"`
	Description string       `json:"description"`
	Score       float64      `json:"score"`
	Band        catalog.Band `json:"band"`
	BandLabel   string       `json:"band_label"`
	Tips        []string     `json:"tips"`
}

// SDTAnalysis is the motivation view derived from category scores.
type SDTAnalysis struct {
	Needs       []NeedScore        `json:"needs"`
	Overall     float64            `json:"overall"`
	OverallBand catalog.Band       `json:"overall_band"`
	Profile     catalog.SDTProfile `json:"profile"`
	Strongest   string             `json:"strongest"`
	Weakest     string             `json:"weakest"`
}

// SDT scores every need as the unweighted mean of its categories' averages.
// The overall score is the mean of the need scores, and its band picks the
// profile. Needs are ranked highest first with ties kept in declaration
// order: a tie for strongest goes to the earlier need, a tie for weakest to
// the later one.
//
// Returns the zero value when the catalog declares no needs.
func SDT(c *catalog.Catalog, scores Scores) SDTAnalysis {
	if len(c.SDT.Needs) == 0 {
		return SDTAnalysis{}
	}

	avg := scores.Map()
	out := SDTAnalysis{Needs: make([]NeedScore, len(c.SDT.Needs))}

	var total float64
	strongest, weakest := 0, 0
	for i, need := range c.SDT.Needs {
		var sum float64
		for _, cat := range need.Categories {
			sum += avg[cat]
		}
		score := sum / float64(len(need.Categories))
		band := BandFor(score)

		out.Needs[i] = NeedScore{
			Name:        need.Name,
			Color:       need.Color,
			Description: need.Description,
			Score:       score,
			Band:        band,
			BandLabel:   c.SDT.BandLabels[band],
			Tips:        need.Tips[band],
		}
		total += score

		if score > out.Needs[strongest].Score {
			strongest = i
		}
		if score <= out.Needs[weakest].Score {
			weakest = i
		}
	}

	out.Overall = total / float64(len(out.Needs))
	out.OverallBand = BandFor(out.Overall)
	out.Profile = c.SDT.Profiles[out.OverallBand]
	out.Strongest = out.Needs[strongest].Name
	out.Weakest = out.Needs[weakest].Name
	return out
}
