package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags.
var version = "dev"

// errCasesFailed signals a run that completed with failed cases.
var errCasesFailed = errors.New("one or more cases failed")

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assertchain",
		Short: "Run assertion chains over concurrent cart scenarios",
		Long: `assertchain evaluates chains of checks against a concurrency-safe
cart. Each chain stops at its first failing check and reports that
failure once, with the file and line of the check.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(
		&configPath, "config", "c", "", "path to a YAML config file",
	)

	cmd.AddCommand(newRunCmd(), newListCmd(), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "assertchain", version)
		},
	}
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errCasesFailed) {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		}
		return 1
	}
	return 0
}
