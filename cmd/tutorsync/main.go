// Package main provides the entry point for the tutorsync CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version        = "0.1.0-dev"
	globalDir      string
	globalLogLevel string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tutorsync",
		Short:         "Match calendar bookings to students and record sessions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalDir, "dir", "C", "", "Working directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCmd(),
		newFetchCmd(),
		newResolveCmd(),
		newPushCmd(),
		newImportWeekCmd(),
		newRosterCmd(),
		newSessionsCmd(),
		newScheduleCmd(),
	)

	return rootCmd
}
