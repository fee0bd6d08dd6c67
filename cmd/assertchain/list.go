package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.assertchain/pkg/scenarios"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available cases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, c := range scenarios.All() {
				fmt.Fprintln(out, c.Name)
			}
			for _, c := range scenarios.Failing() {
				fmt.Fprintf(out, "%s (fails on purpose)\n", c.Name)
			}
		},
	}
}
