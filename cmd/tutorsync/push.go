package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/tutor-sync/internal/application/handlers"
	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/infrastructure/relationaldb/sqlite"
)

type pushFlags struct {
	dryRun  bool
	history bool
}

func newPushCmd() *cobra.Command {
	var flags pushFlags

	cmd := &cobra.Command{
		Use:   "push [file]",
		Short: "Record resolved sessions in the database",
		Long:  "Resolves the events file again and appends every session with a known student and time to the Sessions table.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be pushed without writing")
	cmd.Flags().BoolVar(&flags.history, "history", false, "List recent imports instead of pushing")

	return cmd
}

func runPush(cmd *cobra.Command, args []string, flags pushFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withInternalDeps(depsOptions{}, func(d *internalDeps) error {
		if flags.history {
			return withSink(ctx, d, func(repo *sqlite.Repository) error {
				records, err := repo.ListImports(ctx, ImportHistoryLimit)
				if err != nil {
					return err
				}
				printImportHistory(out, records)
				return nil
			})
		}

		path := d.path(d.Config.Files.Events)
		if len(args) == 1 {
			path = args[0]
		}

		opts := handlers.PushOptions{DryRun: flags.dryRun}

		if flags.dryRun {
			result, err := handlers.NewPushHandler(d.resolver, nil).Handle(ctx, path, opts)
			if err != nil {
				return err
			}
			printBatchSummary(out, result.Batch)
			fmt.Fprintf(out, "Dry run: %d sessions would be pushed, %d skipped\n", len(result.Sessions), result.Skipped)
			return nil
		}

		return withSink(ctx, d, func(repo *sqlite.Repository) error {
			result, err := handlers.NewPushHandler(d.resolver, repo).Handle(ctx, path, opts)
			if err != nil {
				return err
			}
			printBatchSummary(out, result.Batch)
			fmt.Fprintf(out, "Pushed %d sessions, %d skipped\n", result.Pushed, result.Skipped)
			return nil
		})
	})
}

func printImportHistory(w io.Writer, records []entities.ImportRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No imports yet.")
		return
	}
	for _, rec := range records {
		anchor := ""
		if rec.Anchor != "" {
			anchor = " week of " + rec.Anchor
		}
		fmt.Fprintf(w, "%s  %-9s %3d sessions%s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Kind, rec.Sessions, anchor)
	}
}
