package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/tutor-sync/internal/application/handlers"
	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/infrastructure/relationaldb/sqlite"
)

type importWeekFlags struct {
	dryRun bool
}

func newImportWeekCmd() *cobra.Command {
	var flags importWeekFlags

	cmd := &cobra.Command{
		Use:   "import-week [YYYY-MM-DD]",
		Short: "Record this week's recurring sessions",
		Long: `Expands the recurring templates into the week containing the given date
(default: today). Days before the date are skipped, never moved to next week.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportWeek(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be imported without writing")

	return cmd
}

func runImportWeek(cmd *cobra.Command, args []string, flags importWeekFlags) error {
	ctx := cmd.Context()

	return withInternalDeps(depsOptions{}, func(d *internalDeps) error {
		anchor, err := parseAnchor(args, time.Now().In(d.Location), d.Location)
		if err != nil {
			return err
		}
		return importWeek(ctx, cmd.OutOrStdout(), d, anchor, flags.dryRun)
	})
}

// importWeek runs one import for the week containing anchor. It is shared
// with the schedule command.
func importWeek(ctx context.Context, out io.Writer, d *internalDeps, anchor time.Time, dryRun bool) error {
	templatesPath := d.path(d.Config.Files.Templates)
	opts := handlers.ImportWeekOptions{DryRun: dryRun}

	report := func(result *handlers.ImportWeekResult) {
		schedule := result.Schedule
		fmt.Fprintf(out, "Generating from %s to %s\n",
			schedule.Anchor.Format(entities.DateLayout), schedule.WeekEnd.Format(entities.DateLayout))
		printBatchSummary(out, schedule.Batch)
		if dryRun {
			for _, s := range schedule.Sessions {
				fmt.Fprintf(out, "  %d  %s  %s\n", s.StudentID, s.Start.Format(entities.DateTimeLayout), s.Length)
			}
			fmt.Fprintf(out, "Dry run: %d sessions would be pushed\n", len(schedule.Sessions))
			return
		}
		fmt.Fprintf(out, "Pushed %d sessions\n", result.Pushed)
	}

	if dryRun {
		result, err := handlers.NewImportWeekHandler(d.scheduler, nil).Handle(ctx, templatesPath, anchor, opts)
		if err != nil {
			return err
		}
		report(result)
		return nil
	}

	return withSink(ctx, d, func(repo *sqlite.Repository) error {
		result, err := handlers.NewImportWeekHandler(d.scheduler, repo).Handle(ctx, templatesPath, anchor, opts)
		if err != nil {
			return err
		}
		report(result)
		return nil
	})
}

// parseAnchor returns the date given on the command line, or now.
func parseAnchor(args []string, now time.Time, loc *time.Location) (time.Time, error) {
	if len(args) == 0 || args[0] == "" {
		return now, nil
	}
	anchor, err := time.ParseInLocation(entities.DateLayout, args[0], loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", args[0])
	}
	return anchor, nil
}
