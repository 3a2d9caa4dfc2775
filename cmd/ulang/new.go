package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/iancoleman/strcase"
	"github.com/spf13/cobra"

	"ulang/internal/errors"
	"ulang/internal/project"
)

// newNewCmd mirrors cmd/new.rs's Args{name, lib} shape and
// print_success_message.
func newNewCmd() *cobra.Command {
	var lib bool

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if err := project.New(name, lib); err != nil {
				if ce, ok := err.(errors.CompilerError); ok {
					color.Red("%s", ce.Error())
					return nil
				}
				return err
			}

			printSuccessMessage(name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&lib, "lib", false, "library only, skip validators/")

	return cmd
}

func printSuccessMessage(name string) {
	bold := color.New(color.Bold).SprintFunc()
	purple := color.New(color.FgMagenta, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	fmt.Printf("\nYour project %s has been %s created.\n", blue(name), green("successfully"))
	fmt.Println("The project can be compiled and tested by running these commands:")
	fmt.Printf("\n    %s %s\n    %s check\n\n", purple("cd"), bold(strcase.ToSnake(name)), purple("ulang"))
}
