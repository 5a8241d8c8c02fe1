package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type scheduleFlags struct {
	spec   string
	runNow bool
}

func newScheduleCmd() *cobra.Command {
	var flags scheduleFlags

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run import-week on a schedule",
		Long: `Runs import-week for the current week on a cron schedule until interrupted.
Unknown names are logged and left out; nothing is asked and no aliases are learned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.spec, "cron", DefaultScheduleSpec, "Cron spec (minute hour day-of-month month day-of-week)")
	cmd.Flags().BoolVar(&flags.runNow, "now", false, "Also run once immediately")

	return cmd
}

func runSchedule(cmd *cobra.Command, flags scheduleFlags) error {
	if _, err := cron.ParseStandard(flags.spec); err != nil {
		return fmt.Errorf("invalid --cron spec %q: %w", flags.spec, err)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withInternalDeps(depsOptions{unattended: true}, func(d *internalDeps) error {
		job := func() {
			runScheduledImport(ctx, out, d)
		}

		c := newCron(d.Location, d.Logger)
		if _, err := c.AddFunc(flags.spec, job); err != nil {
			return fmt.Errorf("scheduling import: %w", err)
		}

		if flags.runNow {
			job()
		}

		c.Start()
		d.Logger.Info().Str("cron", flags.spec).Time("next", nextRun(c)).Msg("schedule started")

		<-ctx.Done()

		// Wait for a running import to finish before returning.
		<-c.Stop().Done()
		d.Logger.Info().Msg("schedule stopped")
		return nil
	})
}

// runScheduledImport logs instead of returning so one failed week does not
// stop the schedule.
func runScheduledImport(ctx context.Context, out io.Writer, d *internalDeps) {
	anchor := time.Now().In(d.Location)
	if err := importWeek(ctx, out, d, anchor, false); err != nil {
		d.Logger.Error().Err(err).Time("anchor", anchor).Msg("scheduled import failed")
		return
	}
	d.Logger.Info().Time("anchor", anchor).Msg("scheduled import finished")
}

// newCron returns a scheduler that skips a run while the previous one is
// still going, so two imports never touch the roster at once.
func newCron(loc *time.Location, logger zerolog.Logger) *cron.Cron {
	cl := cronLogger{logger: logger}
	return cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
	)
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

func nextRun(c *cron.Cron) time.Time {
	entries := c.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
