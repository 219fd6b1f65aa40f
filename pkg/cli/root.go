package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
)

const (
	// Version is the current version of FlowCanvas.
	Version = "1.0.0"
)

// Config holds the global configuration for the FlowCanvas CLI.
type Config struct {
	ConfigDir string
	Debug     bool
}

// GlobalConfig is the shared configuration instance.
var GlobalConfig = &Config{}

// editorConfig is the on-disk shape of config.yaml.
type editorConfig struct {
	Version     string  `yaml:"version"`
	MinZoom     float64 `yaml:"min_zoom"`
	MaxZoom     float64 `yaml:"max_zoom"`
	GridSize    float64 `yaml:"grid_size"`
	SnapToGrid  bool    `yaml:"snap_to_grid"`
	ShowGrid    bool    `yaml:"show_grid"`
	ShowMinimap bool    `yaml:"show_minimap"`
}

func defaultEditorConfig() editorConfig {
	opts := canvas.DefaultOptions()
	return editorConfig{
		Version:     "1.0",
		MinZoom:     opts.MinZoom,
		MaxZoom:     opts.MaxZoom,
		GridSize:    opts.GridSize,
		SnapToGrid:  opts.SnapToGrid,
		ShowGrid:    opts.ShowGrid,
		ShowMinimap: opts.ShowMinimap,
	}
}

// NewRootCommand creates the root cobra command for FlowCanvas.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flowcanvas",
		Short: "FlowCanvas - terminal node-graph editor",
		Long: `FlowCanvas is a terminal editor for node graphs: position nodes on an
infinite canvas, connect their ports with bezier edges, and keep named
layouts per graph. Graphs are stored as validated YAML documents under
the config directory.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			if GlobalConfig.Debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.flowcanvas)")

	cmd.AddCommand(NewEditCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewGraphsCommand())
	cmd.AddCommand(NewLayoutsCommand())
	cmd.AddCommand(NewInitCommand())

	return cmd
}

// initConfig resolves the config directory and writes a default
// config.yaml on first run.
func initConfig() error {
	// Environment variable always takes priority (for testing).
	if envDir := os.Getenv("FLOWCANVAS_CONFIG_DIR"); envDir != "" {
		GlobalConfig.ConfigDir = envDir
	} else if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		GlobalConfig.ConfigDir = filepath.Join(homeDir, ".flowcanvas")
	}

	if err := os.MkdirAll(GlobalConfig.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(GlobalConfig.ConfigDir, "graphs"), 0755); err != nil {
		return fmt.Errorf("failed to create graphs directory: %w", err)
	}

	configFile := filepath.Join(GlobalConfig.ConfigDir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		data, err := yaml.Marshal(defaultEditorConfig())
		if err != nil {
			return fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err := os.WriteFile(configFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
	}

	return nil
}

// LoadEditorOptions reads config.yaml into canvas options, falling back
// to defaults for anything missing or unreadable.
func LoadEditorOptions() canvas.Options {
	opts := canvas.DefaultOptions()

	data, err := os.ReadFile(filepath.Join(GlobalConfig.ConfigDir, "config.yaml"))
	if err != nil {
		return opts
	}
	cfg := defaultEditorConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return opts
	}

	if cfg.MinZoom > 0 {
		opts.MinZoom = cfg.MinZoom
	}
	if cfg.MaxZoom > 0 {
		opts.MaxZoom = cfg.MaxZoom
	}
	if cfg.GridSize > 0 {
		opts.GridSize = cfg.GridSize
	}
	opts.SnapToGrid = cfg.SnapToGrid
	opts.ShowGrid = cfg.ShowGrid
	opts.ShowMinimap = cfg.ShowMinimap
	return opts
}

// LayoutDBPath returns the SQLite path for saved layouts.
func LayoutDBPath() string {
	return filepath.Join(GlobalConfig.ConfigDir, "layouts.db")
}
