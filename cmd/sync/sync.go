// Package sync implements the sync command, which runs one full fetch of the
// configured space and saves the result as the local snapshot.
package sync

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/spacesync/cmd/common"
	"github.com/jonesrussell/spacesync/internal/domain"
	"github.com/jonesrussell/spacesync/internal/logger"
	"github.com/jonesrussell/spacesync/internal/pipeline"
	"github.com/jonesrussell/spacesync/internal/store"
)

// Runner executes one sync run and persists the result.
type Runner struct {
	deps      common.CommandDeps
	storePath string
}

// NewRunner creates a Runner. An empty storePath disables persistence.
func NewRunner(deps common.CommandDeps, storePath string) *Runner {
	return &Runner{deps: deps, storePath: storePath}
}

// Start runs the pipeline once, prints a summary, and saves the snapshot.
func (r *Runner) Start(ctx context.Context) error {
	client, err := r.deps.NewRemoteClient()
	if err != nil {
		return err
	}

	reporter := pipeline.NewLogReporter(r.deps.Logger)
	p := pipeline.New(client, r.deps.Config, reporter, r.deps.Logger)

	result, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	renderSummary(result)

	if r.storePath == "" {
		r.deps.Logger.Info("Persistence disabled, snapshot not saved")
		return nil
	}

	s, err := store.Open(r.storePath, r.deps.Logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Save(ctx, result); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	r.deps.Logger.Info("Snapshot saved", logger.String("path", r.storePath))
	return nil
}

// renderSummary prints the record counts of a completed run.
func renderSummary(result *domain.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Kind", "Count"})
	t.AppendRow(table.Row{"Entries", len(result.CurrentSyncData.Entries)})
	t.AppendRow(table.Row{"Assets", len(result.CurrentSyncData.Assets)})
	t.AppendRow(table.Row{"Content types", len(result.ContentTypeItems)})
	t.AppendRow(table.Row{"Locales", len(result.Locales)})
	t.AppendFooter(table.Row{"Default locale", result.DefaultLocale})

	t.Render()
}

// Command creates the sync command.
func Command() *cobra.Command {
	var noStore bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the whole space once",
		Long: `Fetch every entry, asset, content type, and locale of the configured
space, resolve entry links, and save the result as the local snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			storePath := deps.Config.Store.Path
			if noStore {
				storePath = ""
			}

			return NewRunner(deps, storePath).Start(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&noStore, "no-store", false, "skip saving the snapshot")

	return cmd
}
