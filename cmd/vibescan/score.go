package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
	"github.com/nyashahama/vibe-scan-backend/internal/scoring"
)

func newScoreCmd() *cobra.Command {
	var (
		variant string
		file    string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one answer set",
		Long: `Score one answer set read from a JSON object of answer keys to 1-5 values,
e.g. {"q1": 4, "q2": 5}. Use --file - to read from stdin.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.ByVariant(variant)
			if err != nil {
				return err
			}
			answers, err := readAnswers(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			analysis := scoring.Analyze(c, answers)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(analysis)
			}
			printAnalysis(cmd.OutOrStdout(), analysis)
			return nil
		},
	}
	cmd.Flags().StringVarP(&variant, "variant", "v", catalog.VariantIndividual, "Catalog variant (individual|manager)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to answers JSON, or - for stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full analysis as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readAnswers(stdin io.Reader, path string) (scoring.AnswerSet, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	var answers scoring.AnswerSet
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	for key, v := range answers {
		if v < 1 || v > 5 {
			return nil, fmt.Errorf("answer %s: value %d out of range 1-5", key, v)
		}
	}
	if answers == nil {
		answers = scoring.AnswerSet{}
	}
	return answers, nil
}

func printAnalysis(w io.Writer, a scoring.Analysis) {
	fmt.Fprintln(w, styleTitle.Render("VIBE scan: "+a.Variant))
	fmt.Fprintln(w, styleGray.Render(fmt.Sprintf("%d answers scored", a.Answered)))
	fmt.Fprintln(w)

	for _, cat := range a.Categories {
		fmt.Fprintf(w, "%s %s%s  %s\n",
			swatch(cat.Color),
			styleLabel.Render(cat.Category),
			styleNumber.Render(fmt.Sprintf("%.2f", cat.Average)),
			renderBand(cat.Band),
		)
		fmt.Fprintln(w, "  "+styleGray.Render(cat.Advice))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styleBold.Render("Herzberg"))
	fmt.Fprintf(w, "  %s%s\n", styleLabel.Render("Hygiene"), styleNumber.Render(fmt.Sprintf("%.2f", a.Factors.Hygiene)))
	fmt.Fprintf(w, "  %s%s\n", styleLabel.Render("Motivators"), styleNumber.Render(fmt.Sprintf("%.2f", a.Factors.Motivator)))
	fmt.Fprintf(w, "  %s %s (threshold %.1f)\n", styleLabel.Render("Profile"), a.Profile, a.Threshold)
	if a.ProfileAdvice.Title != "" {
		fmt.Fprintln(w, "  "+a.ProfileAdvice.Title)
	}

	if len(a.SDT.Needs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleBold.Render("Motivation (SDT)"))
		for _, n := range a.SDT.Needs {
			fmt.Fprintf(w, "%s %s%s  %s\n",
				swatch(n.Color),
				styleLabel.Render(n.Name),
				styleNumber.Render(fmt.Sprintf("%.2f", n.Score)),
				renderBand(n.Band),
			)
		}
		fmt.Fprintf(w, "  %s%s  %s\n",
			styleLabel.Render("Overall"),
			styleNumber.Render(fmt.Sprintf("%.2f", a.SDT.Overall)),
			renderBand(a.SDT.OverallBand),
		)
		fmt.Fprintln(w, "  "+strings.TrimSpace(a.SDT.Profile.Title))
	}
}
