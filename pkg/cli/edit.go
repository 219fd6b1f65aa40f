package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/graph"
	"github.com/flowcanvas/flowcanvas/pkg/storage"
	"github.com/flowcanvas/flowcanvas/pkg/tui"
)

// NewEditCommand creates the edit command: the interactive canvas.
func NewEditCommand() *cobra.Command {
	var readOnly bool
	var layoutName string

	cmd := &cobra.Command{
		Use:   "edit <graph-name>",
		Short: "Open a graph in the canvas editor",
		Long: `Open a graph in the interactive terminal canvas.

Keys:
  arrows / hjkl   move the pointer (HJKL for coarse steps)
  space           press / release the pointer button
  v               press with shift held (box selection)
  enter           click
  a               add a node at the pointer
  x / delete      delete the selection
  y, p            copy, paste
  u, r            undo, redo
  f, 1, +, -      fit view, reset zoom, zoom in/out
  g, t            toggle grid, toggle snapping
  s               save
  q               quit

Examples:
  flowcanvas edit my-pipeline
  flowcanvas edit my-pipeline --read-only
  flowcanvas edit my-pipeline --layout tidy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			store, err := storage.NewFilesystemGraphStoreWithPath(GlobalConfig.ConfigDir)
			if err != nil {
				return err
			}

			var g *graph.Graph
			if store.Exists(name) {
				g, err = store.Load(name)
				if err != nil {
					return fmt.Errorf("failed to load graph: %w", err)
				}
			} else {
				g = graph.New(name)
			}

			opts := LoadEditorOptions()
			opts.ReadOnly = readOnly

			if layoutName != "" {
				repo, err := storage.NewSQLiteLayoutRepositoryWithPath(LayoutDBPath())
				if err != nil {
					return fmt.Errorf("failed to open layout database: %w", err)
				}
				layout, err := repo.Load(name, layoutName)
				closeErr := repo.Close()
				if err != nil {
					return fmt.Errorf("failed to load layout %q: %w", layoutName, err)
				}
				if closeErr != nil {
					return closeErr
				}
				layout.Apply(g)
			}

			app, err := tui.NewApp(g, opts, store)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			return app.Run()
		},
	}

	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Open without mutating interactions")
	cmd.Flags().StringVar(&layoutName, "layout", "", "Apply a saved layout before opening")

	return cmd
}
