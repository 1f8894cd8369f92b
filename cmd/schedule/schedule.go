// Package schedule implements the schedule command, which runs the sync on a
// cron schedule until interrupted.
package schedule

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/spacesync/cmd/common"
	cmdsync "github.com/jonesrussell/spacesync/cmd/sync"
	"github.com/jonesrussell/spacesync/internal/logger"
)

// DefaultSchedule runs the sync at the top of every hour.
const DefaultSchedule = "0 * * * *"

// Scheduler runs sync jobs on a cron schedule.
type Scheduler struct {
	deps     common.CommandDeps
	runner   *cmdsync.Runner
	schedule string
	runNow   bool
}

// NewScheduler creates a Scheduler for the given cron expression.
func NewScheduler(deps common.CommandDeps, schedule string, runNow bool) *Scheduler {
	return &Scheduler{
		deps:     deps,
		runner:   cmdsync.NewRunner(deps, deps.Config.Store.Path),
		schedule: schedule,
		runNow:   runNow,
	}
}

// Start schedules sync runs and blocks until the context is cancelled or an
// interrupt arrives. A failed run is logged and the schedule keeps going; the
// next tick retries from scratch.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New()

	_, err := c.AddFunc(s.schedule, func() {
		s.deps.Logger.Info("Scheduled sync triggered", logger.String("schedule", s.schedule))
		if runErr := s.runner.Start(ctx); runErr != nil {
			s.deps.Logger.Error("Scheduled sync failed", logger.Error(runErr))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.schedule, err)
	}

	if s.runNow {
		if runErr := s.runner.Start(ctx); runErr != nil {
			s.deps.Logger.Error("Initial sync failed", logger.Error(runErr))
		}
	}

	c.Start()
	defer c.Stop()

	s.deps.Logger.Info("Scheduler started", logger.String("schedule", s.schedule))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.deps.Logger.Info("Scheduler stopping: context cancelled")
	case sig := <-sigChan:
		s.deps.Logger.Info("Scheduler stopping on signal", logger.String("signal", sig.String()))
	}

	return nil
}

// Command creates the schedule command.
func Command() *cobra.Command {
	var (
		schedule string
		runNow   bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the sync on a cron schedule",
		Long: `Run the full-space sync repeatedly on a cron schedule. The command
blocks until interrupted; each tick performs a complete sync run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			return NewScheduler(deps, schedule, runNow).Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&schedule, "cron", DefaultSchedule, "cron expression (minute hour day month weekday)")
	cmd.Flags().BoolVar(&runNow, "run-now", false, "run one sync immediately before scheduling")

	return cmd
}
