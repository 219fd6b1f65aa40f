package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
	"github.com/flowcanvas/flowcanvas/pkg/validation"
)

// Layout is a named arrangement of a graph: node positions plus the
// viewport they were saved under. Layouts carry no node content; they
// apply by node ID onto whatever graph the host loads.
type Layout struct {
	GraphName string
	Name      string
	Positions map[string]canvas.Point
	Viewport  canvas.Viewport
	UpdatedAt time.Time
}

// CaptureLayout snapshots the current node positions and viewport under
// the given layout name.
func CaptureLayout(name string, g *graph.Graph, vp canvas.Viewport) *Layout {
	l := &Layout{
		GraphName: g.Name,
		Name:      name,
		Positions: make(map[string]canvas.Point, len(g.Nodes)),
		Viewport:  vp,
	}
	for _, n := range g.Nodes {
		l.Positions[n.ID] = canvas.Point{X: n.X, Y: n.Y}
	}
	return l
}

// Apply moves the graph's nodes to the layout's stored positions. Nodes
// the layout does not know keep their current position; stored positions
// for nodes that no longer exist are ignored.
func (l *Layout) Apply(g *graph.Graph) {
	for _, n := range g.Nodes {
		if p, ok := l.Positions[n.ID]; ok {
			n.X, n.Y = p.X, p.Y
		}
	}
}

// SQLiteLayoutRepository persists named layouts in SQLite.
type SQLiteLayoutRepository struct {
	db *sql.DB
}

// NewSQLiteLayoutRepository opens (or creates) the layout database at
// ~/.flowcanvas/layouts.db.
func NewSQLiteLayoutRepository() (*SQLiteLayoutRepository, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewSQLiteLayoutRepositoryWithPath(filepath.Join(homeDir, ".flowcanvas", "layouts.db"))
}

// NewSQLiteLayoutRepositoryWithPath opens a repository at a custom
// database path. Useful for testing.
func NewSQLiteLayoutRepositoryWithPath(dbPath string) (*SQLiteLayoutRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitializeDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLiteLayoutRepository{db: db}, nil
}

// Close closes the database connection.
func (r *SQLiteLayoutRepository) Close() error {
	return r.db.Close()
}

// Save upserts a layout keyed by (graph name, layout name).
func (r *SQLiteLayoutRepository) Save(l *Layout) error {
	if l == nil {
		return fmt.Errorf("cannot save nil layout")
	}
	if err := validation.Name("graph", l.GraphName); err != nil {
		return err
	}
	if err := validation.Name("layout", l.Name); err != nil {
		return err
	}

	positions, err := json.Marshal(l.Positions)
	if err != nil {
		return fmt.Errorf("failed to marshal layout positions: %w", err)
	}

	query := `
		INSERT INTO layouts (
			graph_name, name, positions, viewport_x, viewport_y, viewport_zoom, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(graph_name, name) DO UPDATE SET
			positions = excluded.positions,
			viewport_x = excluded.viewport_x,
			viewport_y = excluded.viewport_y,
			viewport_zoom = excluded.viewport_zoom,
			updated_at = excluded.updated_at
	`

	_, err = r.db.Exec(query,
		l.GraphName,
		l.Name,
		string(positions),
		l.Viewport.X,
		l.Viewport.Y,
		l.Viewport.Zoom,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}

	return nil
}

// Load retrieves one layout by graph and layout name.
func (r *SQLiteLayoutRepository) Load(graphName, name string) (*Layout, error) {
	if graphName == "" || name == "" {
		return nil, fmt.Errorf("graph name and layout name cannot be empty")
	}

	query := `
		SELECT graph_name, name, positions, viewport_x, viewport_y, viewport_zoom, updated_at
		FROM layouts
		WHERE graph_name = ? AND name = ?
	`

	var l Layout
	var positions string
	err := r.db.QueryRow(query, graphName, name).Scan(
		&l.GraphName,
		&l.Name,
		&positions,
		&l.Viewport.X,
		&l.Viewport.Y,
		&l.Viewport.Zoom,
		&l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("layout not found: %s/%s", graphName, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}

	if err := json.Unmarshal([]byte(positions), &l.Positions); err != nil {
		return nil, fmt.Errorf("failed to parse layout positions: %w", err)
	}

	return &l, nil
}

// ListByGraph returns all layouts saved for a graph, most recently
// updated first. Positions are loaded in full; layouts are small.
func (r *SQLiteLayoutRepository) ListByGraph(graphName string) ([]*Layout, error) {
	query := `
		SELECT graph_name, name, positions, viewport_x, viewport_y, viewport_zoom, updated_at
		FROM layouts
		WHERE graph_name = ?
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(query, graphName)
	if err != nil {
		return nil, fmt.Errorf("failed to query layouts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	layouts := make([]*Layout, 0)
	for rows.Next() {
		var l Layout
		var positions string
		err := rows.Scan(
			&l.GraphName,
			&l.Name,
			&positions,
			&l.Viewport.X,
			&l.Viewport.Y,
			&l.Viewport.Zoom,
			&l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan layout: %w", err)
		}
		if err := json.Unmarshal([]byte(positions), &l.Positions); err != nil {
			return nil, fmt.Errorf("failed to parse layout positions: %w", err)
		}
		layouts = append(layouts, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating layouts: %w", err)
	}

	return layouts, nil
}

// Delete removes a layout.
func (r *SQLiteLayoutRepository) Delete(graphName, name string) error {
	if graphName == "" || name == "" {
		return fmt.Errorf("graph name and layout name cannot be empty")
	}

	result, err := r.db.Exec("DELETE FROM layouts WHERE graph_name = ? AND name = ?", graphName, name)
	if err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("layout not found: %s/%s", graphName, name)
	}

	return nil
}
