package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/tutor-sync/internal/application/handlers"
	"github.com/ersonp/tutor-sync/internal/domain/ports"
)

type fetchFlags struct {
	days int
}

func newFetchCmd() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download upcoming sessions from the calendar",
		Long:  "Reads the configured ICS feed and replaces the events file with every session in the coming days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.days, "days", 0, "Days ahead to fetch (default: calendar.horizon_days)")

	return cmd
}

func runFetch(cmd *cobra.Command, flags fetchFlags) error {
	if flags.days < 0 {
		return fmt.Errorf("invalid --days value %d", flags.days)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		horizon := d.Config.Horizon()
		if flags.days > 0 {
			horizon = time.Duration(flags.days) * 24 * time.Hour
		}

		return withEventSource(d, func(source ports.EventSource) error {
			result, err := handlers.NewFetchHandler(source).Handle(ctx, d.path(d.Config.Files.Events), time.Now(), horizon)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d events into %s\n", len(result.Events), result.Path)
			return nil
		})
	})
}
