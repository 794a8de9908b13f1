package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nyashahama/vibe-scan-backend/internal/team"
)

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <company name>",
		Short: "Print the pseudonymous key stored for a company name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), team.HashCompany(strings.Join(args, " ")))
			return nil
		},
	}
}
