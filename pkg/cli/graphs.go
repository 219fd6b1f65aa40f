package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/storage"
)

// NewGraphsCommand creates the graphs command group.
func NewGraphsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "Manage stored graph documents",
	}

	cmd.AddCommand(newGraphsListCommand())
	cmd.AddCommand(newGraphsDeleteCommand())

	return cmd
}

func newGraphsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFilesystemGraphStoreWithPath(GlobalConfig.ConfigDir)
			if err != nil {
				return err
			}
			names, err := store.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No graphs stored. Create one with: flowcanvas init <name>")
				return nil
			}
			for _, name := range names {
				g, err := store.Load(name)
				if err != nil {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (unreadable: %v)\n", name, err)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %d nodes, %d edges\n", name, len(g.Nodes), len(g.Edges))
			}
			return nil
		},
	}
}

func newGraphsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <graph-name>",
		Short: "Delete a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFilesystemGraphStoreWithPath(GlobalConfig.ConfigDir)
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted graph '%s'\n", args[0])
			return nil
		},
	}
}
