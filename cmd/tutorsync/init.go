package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/tutor-sync/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a tutorsync workspace",
		Long:  "Creates a .tutorsync directory with default configuration plus empty roster and recurring templates files.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	base, err := basePath()
	if err != nil {
		return err
	}

	result, err := handlers.NewInitHandler().Handle(cmd.Context(), base)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
	for _, path := range result.Created {
		fmt.Fprintf(out, "Created %s\n", path)
	}
	fmt.Fprintln(out, "tutorsync initialized successfully!")

	return nil
}
