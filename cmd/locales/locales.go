// Package locales implements the locales command, which lists the locales of
// the configured space in a formatted table.
package locales

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/spacesync/cmd/common"
	"github.com/jonesrussell/spacesync/internal/space"
)

// Command creates the locales command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the locales of the space",
		Long: `List every locale of the configured space, marking the default. The
configured locale filter applies; the default locale is reported even when
the filter drops it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			client, err := deps.NewRemoteClient()
			if err != nil {
				return err
			}

			fetcher := space.NewFetcher(client, deps.Logger)
			boot, err := fetcher.Bootstrap(cmd.Context(), deps.Config.Space.LocaleFilterFunc())
			if err != nil {
				return fmt.Errorf("failed to fetch locales: %w", err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)

			t.AppendHeader(table.Row{"Code", "Name", "Default"})
			for _, l := range boot.Locales {
				t.AppendRow(table.Row{l.Code, l.Name, l.Default})
			}
			t.AppendFooter(table.Row{"Default locale", boot.DefaultLocale, ""})

			t.Render()
			return nil
		},
	}
}
