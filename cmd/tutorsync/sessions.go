package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/tutor-sync/internal/domain/entities"
	"github.com/ersonp/tutor-sync/internal/infrastructure/relationaldb/sqlite"
)

type sessionsFlags struct {
	student int
}

func newSessionsCmd() *cobra.Command {
	var flags sessionsFlags

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Show recorded sessions",
		Long:  "Prints how many sessions are stored, or every session of one student with --student.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.student, "student", 0, "List the sessions of this student id")

	return cmd
}

func runSessions(cmd *cobra.Command, flags sessionsFlags) error {
	if flags.student < 0 {
		return fmt.Errorf("invalid --student value %d", flags.student)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withInternalDeps(depsOptions{}, func(d *internalDeps) error {
		return withSink(ctx, d, func(repo *sqlite.Repository) error {
			if flags.student == 0 {
				count, err := repo.CountSessions(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d sessions recorded in %s\n", count, repo.Path())
				return nil
			}

			sessions, err := repo.ListSessions(ctx, flags.student)
			if err != nil {
				return err
			}
			printSessions(out, flags.student, sessions)
			return nil
		})
	})
}

func printSessions(w io.Writer, studentID int, sessions []entities.Session) {
	if len(sessions) == 0 {
		fmt.Fprintf(w, "No sessions for student %d.\n", studentID)
		return
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %s\n", s.Start.Format(entities.DateTimeLayout), s.Length)
	}
	fmt.Fprintf(w, "%d sessions for student %d\n", len(sessions), studentID)
}
