package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/tutor-sync/internal/domain/services"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [file]",
		Short: "Match event names to roster ids",
		Long: `Resolves every name in the events file against the roster, asking about
names it does not know and remembering the answers as aliases. The file is
rewritten with an id column.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runResolve,
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		path := d.path(d.Config.Files.Events)
		if len(args) == 1 {
			path = args[0]
		}

		result, err := d.ResolveHandler.Handle(ctx, path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Resolved %d events in %s\n", len(result.Batch.Events), result.Path)
		printBatchSummary(out, result.Batch)
		return nil
	})
}

// printBatchSummary reports learned aliases, warnings and unmatched names.
func printBatchSummary(w io.Writer, batch *services.BatchResult) {
	for _, learned := range batch.Learned {
		fmt.Fprintf(w, "Remembered %q as [%02d] %s\n", learned.Alias, learned.IdentityID, learned.Identity)
	}
	for _, warning := range batch.Warnings {
		fmt.Fprintf(w, "Warning: %s!\n", warning)
	}
	if len(batch.Unmatched) == 0 {
		return
	}
	fmt.Fprintf(w, "\nCouldn't match (%d):\n", len(batch.Unmatched))
	for _, name := range batch.Unmatched {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
