package main

import (
	"github.com/spf13/cobra"
)

// newCheckCmd validates a project's module graph without printing the
// build order — same sequencing as `build`, used as a dry run.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate project module dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSequence(".", false)
		},
	}
}
