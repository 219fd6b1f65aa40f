package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/storage"
)

// NewLayoutsCommand creates the layouts command group. Layouts are
// named node arrangements saved per graph, kept in SQLite next to the
// graph documents.
func NewLayoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Manage saved layouts",
	}

	cmd.AddCommand(newLayoutsListCommand())
	cmd.AddCommand(newLayoutsSaveCommand())
	cmd.AddCommand(newLayoutsApplyCommand())
	cmd.AddCommand(newLayoutsDeleteCommand())

	return cmd
}

func openLayoutRepo() (*storage.SQLiteLayoutRepository, error) {
	return storage.NewSQLiteLayoutRepositoryWithPath(LayoutDBPath())
}

func newLayoutsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <graph-name>",
		Short: "List layouts saved for a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openLayoutRepo()
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			layouts, err := repo.ListByGraph(args[0])
			if err != nil {
				return err
			}
			if len(layouts) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No layouts saved for '%s'\n", args[0])
				return nil
			}
			for _, l := range layouts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %d positions, zoom %.0f%%, updated %s\n",
					l.Name, len(l.Positions), l.Viewport.Zoom*100, l.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newLayoutsSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <graph-name> <layout-name>",
		Short: "Save the graph's current positions as a layout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFilesystemGraphStoreWithPath(GlobalConfig.ConfigDir)
			if err != nil {
				return err
			}
			g, err := store.Load(args[0])
			if err != nil {
				return err
			}

			repo, err := openLayoutRepo()
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			l := storage.CaptureLayout(args[1], g, canvas.Viewport{Zoom: 1})
			if err := repo.Save(l); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved layout '%s' for '%s' (%d positions)\n",
				args[1], args[0], len(l.Positions))
			return nil
		},
	}
}

func newLayoutsApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <graph-name> <layout-name>",
		Short: "Apply a saved layout to the stored graph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFilesystemGraphStoreWithPath(GlobalConfig.ConfigDir)
			if err != nil {
				return err
			}
			g, err := store.Load(args[0])
			if err != nil {
				return err
			}

			repo, err := openLayoutRepo()
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			l, err := repo.Load(args[0], args[1])
			if err != nil {
				return err
			}
			l.Apply(g)
			if err := store.Save(g); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied layout '%s' to '%s'\n", args[1], args[0])
			return nil
		},
	}
}

func newLayoutsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <graph-name> <layout-name>",
		Short: "Delete a saved layout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openLayoutRepo()
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			if err := repo.Delete(args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted layout '%s' for '%s'\n", args[1], args[0])
			return nil
		},
	}
}
