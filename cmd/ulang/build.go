package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ulang/internal/config"
	"ulang/internal/errors"
)

// newBuildCmd sequences a project's modules by import dependency and
// reports the build order. Lowering each module's validators through
// internal/codegen requires a checked AST, which this driver has no
// way to produce without a lexer/parser/type checker; sequencing is
// as far as `build` goes here.
func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Sequence project modules by dependency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSequence(".", true)
		},
	}
}

func runSequence(root string, printOrder bool) error {
	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("not a project directory (missing %s): %w", config.ManifestName, err)
	}

	g, err := loadGraph(root)
	if err != nil {
		return err
	}

	sequence, err := g.Sequence()
	if err != nil {
		if ce, ok := err.(errors.CompilerError); ok {
			color.Red("%s", ce.Error())
			return nil
		}
		return err
	}

	if !printOrder {
		color.Green("project %s: no import cycles, %d module(s)", cfg.Name, len(sequence))
		return nil
	}

	color.Green("project %s: %d module(s) in build order", cfg.Name, len(sequence))
	for _, name := range sequence {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
