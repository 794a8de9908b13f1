package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyashahama/vibe-scan-backend/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	var variant string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List a catalog's categories and questions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.ByVariant(variant)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%s catalog (%d questions, threshold %.1f)",
				c.Variant, len(c.Questions), c.ProfileThreshold)))
			for _, cat := range c.Categories {
				fmt.Fprintln(w)
				fmt.Fprintln(w, swatch(cat.Color)+" "+styleBold.Render(cat.Name))
				for _, q := range c.Questions {
					if q.Category != cat.Name {
						continue
					}
					fmt.Fprintf(w, "  %-5s %s %s\n", c.Key(q.ID), styleGray.Render(fmt.Sprintf("[%s]", q.Factor)), q.Text)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&variant, "variant", "v", catalog.VariantIndividual, "Catalog variant (individual|manager)")
	return cmd
}
