// Package contenttypes implements the content-types command, which lists the
// schema descriptors of the configured space in a formatted table.
package contenttypes

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/spacesync/cmd/common"
	"github.com/jonesrussell/spacesync/internal/pager"
)

// Command creates the content-types command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "content-types",
		Short: "List the content types of the space",
		Long:  `List every content type of the configured space with its field count.`,
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

			types, err := pager.CollectAll(cmd.Context(), client.ListContentTypes,
				deps.Config.Space.ContentTypePageSize)
			if err != nil {
				return fmt.Errorf("failed to fetch content types: %w", err)
			}

			if len(types) == 0 {
				deps.Logger.Info("No content types defined")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)

			t.AppendHeader(table.Row{"ID", "Name", "Display Field", "Fields"})
			for _, ct := range types {
				t.AppendRow(table.Row{ct.Sys.RemoteIdentifier(), ct.Name, ct.DisplayField, len(ct.Fields)})
			}

			t.Render()
			return nil
		},
	}
}
