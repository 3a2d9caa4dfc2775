package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ulang",
		Short: "Code generator toolchain driver",
	}

	root.AddCommand(newNewCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newCheckCmd())

	return root
}
