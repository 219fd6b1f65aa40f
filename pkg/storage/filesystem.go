package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	flowerrors "github.com/flowcanvas/flowcanvas/pkg/errors"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
	"github.com/flowcanvas/flowcanvas/pkg/validation"
)

// FilesystemGraphStore persists graph documents as YAML files, one file
// per graph in <base>/graphs/. Documents are validated on both save and
// load, so a hand-edited file that breaks the schema is rejected before
// it reaches the canvas.
type FilesystemGraphStore struct {
	baseDir string
}

// NewFilesystemGraphStore creates a store rooted at ~/.flowcanvas.
func NewFilesystemGraphStore() (*FilesystemGraphStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewFilesystemGraphStoreWithPath(filepath.Join(homeDir, ".flowcanvas"))
}

// NewFilesystemGraphStoreWithPath creates a store rooted at a custom
// base directory. Useful for testing or custom configurations.
func NewFilesystemGraphStoreWithPath(baseDir string) (*FilesystemGraphStore, error) {
	graphsDir := filepath.Join(baseDir, "graphs")
	if err := os.MkdirAll(graphsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create graphs directory: %w", err)
	}
	return &FilesystemGraphStore{baseDir: graphsDir}, nil
}

// Save validates and persists a graph document. The filename is derived
// from the graph name with a .yaml extension; the write is atomic via
// temp file + rename.
func (s *FilesystemGraphStore) Save(g *graph.Graph) error {
	if g == nil {
		return fmt.Errorf("cannot save nil graph")
	}
	if err := validGraphName(g.Name); err != nil {
		return err
	}
	if err := graph.ValidateDocument(g); err != nil {
		return fmt.Errorf("graph %q failed validation: %w", g.Name, err)
	}

	data, err := yaml.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal graph to YAML: %w", err)
	}

	filePath := s.graphPath(g.Name)
	tempPath := filePath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return flowerrors.NewOperationalError("writing graph file", g.Name, "", err)
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return flowerrors.NewOperationalError("saving graph file", g.Name, "", err)
	}

	return nil
}

// Load reads and validates a graph document by name.
func (s *FilesystemGraphStore) Load(name string) (*graph.Graph, error) {
	if err := validGraphName(name); err != nil {
		return nil, err
	}

	filePath := s.graphPath(name)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("graph not found: %s", name)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, flowerrors.NewOperationalError("reading graph file", name, "", err)
	}

	var g graph.Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse graph YAML: %w", err)
	}
	if err := graph.ValidateDocument(&g); err != nil {
		return nil, fmt.Errorf("graph %q failed validation: %w", name, err)
	}

	return &g, nil
}

// List returns the names of all stored graphs, sorted by the
// filesystem's directory order.
func (s *FilesystemGraphStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read graphs directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") {
			names = append(names, strings.TrimSuffix(name, ".yaml"))
		}
	}
	return names, nil
}

// Delete removes a stored graph.
func (s *FilesystemGraphStore) Delete(name string) error {
	if err := validGraphName(name); err != nil {
		return err
	}

	filePath := s.graphPath(name)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("graph not found: %s", name)
	}
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete graph file: %w", err)
	}
	return nil
}

// Exists reports whether a graph with the given name is stored.
func (s *FilesystemGraphStore) Exists(name string) bool {
	if validGraphName(name) != nil {
		return false
	}
	_, err := os.Stat(s.graphPath(name))
	return err == nil
}

func (s *FilesystemGraphStore) graphPath(name string) string {
	return filepath.Join(s.baseDir, name+".yaml")
}

// validGraphName rejects names that would escape the graphs directory
// or produce unusable filenames.
func validGraphName(name string) error {
	return validation.Name("graph", name)
}
