package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show or extend the student roster",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List students and their known aliases",
			Args:  cobra.NoArgs,
			RunE:  runRosterList,
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a student with the next free id",
			Args:  cobra.ExactArgs(1),
			RunE:  runRosterAdd,
		},
	)

	return cmd
}

func runRosterList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		roster, err := d.RosterHandler.List(ctx)
		if err != nil {
			return err
		}
		printRoster(cmd.OutOrStdout(), roster)
		return nil
	})
}

func runRosterAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		identity, err := d.RosterHandler.Add(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", identity.Label())
		return nil
	})
}

func printRoster(w io.Writer, roster entities.Roster) {
	if len(roster) == 0 {
		fmt.Fprintln(w, "Roster is empty. Add students with: tutorsync roster add <name>")
		return
	}
	for _, identity := range roster {
		line := identity.Label()
		if aliases := identity.KnownAliases(); len(aliases) > 0 {
			line += "  (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
}
