package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

func testRepo(t *testing.T) *SQLiteLayoutRepository {
	t.Helper()
	repo, err := NewSQLiteLayoutRepositoryWithPath(filepath.Join(t.TempDir(), "layouts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func layoutGraph() *graph.Graph {
	g := graph.New("pipeline")
	g.Nodes = []*graph.Node{
		{ID: "a", Type: "task", X: 10, Y: 20, Width: 120, Height: 60},
		{ID: "b", Type: "task", X: 300, Y: 40, Width: 120, Height: 60},
	}
	return g
}

func TestLayoutSaveLoadRoundTrip(t *testing.T) {
	repo := testRepo(t)

	l := CaptureLayout("tidy", layoutGraph(), canvas.Viewport{X: -50, Y: 25, Zoom: 1.5})
	require.NoError(t, repo.Save(l))

	got, err := repo.Load("pipeline", "tidy")
	require.NoError(t, err)
	assert.Equal(t, canvas.Point{X: 10, Y: 20}, got.Positions["a"])
	assert.Equal(t, canvas.Point{X: 300, Y: 40}, got.Positions["b"])
	assert.Equal(t, canvas.Viewport{X: -50, Y: 25, Zoom: 1.5}, got.Viewport)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestLayoutUpsert(t *testing.T) {
	repo := testRepo(t)
	g := layoutGraph()

	require.NoError(t, repo.Save(CaptureLayout("tidy", g, canvas.Viewport{Zoom: 1})))

	g.Node("a").X = 999
	require.NoError(t, repo.Save(CaptureLayout("tidy", g, canvas.Viewport{Zoom: 2})))

	got, err := repo.Load("pipeline", "tidy")
	require.NoError(t, err)
	assert.Equal(t, 999.0, got.Positions["a"].X)
	assert.Equal(t, 2.0, got.Viewport.Zoom)

	layouts, err := repo.ListByGraph("pipeline")
	require.NoError(t, err)
	assert.Len(t, layouts, 1, "same key must overwrite, not accumulate")
}

func TestLayoutApply(t *testing.T) {
	repo := testRepo(t)
	g := layoutGraph()
	require.NoError(t, repo.Save(CaptureLayout("tidy", g, canvas.Viewport{Zoom: 1})))

	// Host moves nodes, deletes one, adds another.
	g.Node("a").X, g.Node("a").Y = 700, 700
	require.NoError(t, g.RemoveNode("b"))
	require.NoError(t, g.AddNode(&graph.Node{ID: "c", Type: "task", X: 5, Y: 5, Width: 100, Height: 50}))

	l, err := repo.Load("pipeline", "tidy")
	require.NoError(t, err)
	l.Apply(g)

	assert.Equal(t, 10.0, g.Node("a").X, "known node returns to stored position")
	assert.Equal(t, 5.0, g.Node("c").X, "unknown node keeps its position")
}

func TestLayoutListByGraph(t *testing.T) {
	repo := testRepo(t)
	g := layoutGraph()

	require.NoError(t, repo.Save(CaptureLayout("first", g, canvas.Viewport{Zoom: 1})))
	require.NoError(t, repo.Save(CaptureLayout("second", g, canvas.Viewport{Zoom: 1})))

	other := graph.New("other")
	require.NoError(t, repo.Save(CaptureLayout("unrelated", other, canvas.Viewport{Zoom: 1})))

	layouts, err := repo.ListByGraph("pipeline")
	require.NoError(t, err)
	require.Len(t, layouts, 2)
	for _, l := range layouts {
		assert.Equal(t, "pipeline", l.GraphName)
	}

	empty, err := repo.ListByGraph("nonexistent")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLayoutDelete(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.Save(CaptureLayout("tidy", layoutGraph(), canvas.Viewport{Zoom: 1})))

	require.NoError(t, repo.Delete("pipeline", "tidy"))
	_, err := repo.Load("pipeline", "tidy")
	assert.Error(t, err)
	assert.Error(t, repo.Delete("pipeline", "tidy"), "double delete reports not found")
}

func TestLayoutValidation(t *testing.T) {
	repo := testRepo(t)

	assert.Error(t, repo.Save(nil))
	assert.Error(t, repo.Save(&Layout{Name: "x"}), "missing graph name")
	assert.Error(t, repo.Save(&Layout{GraphName: "g"}), "missing layout name")

	_, err := repo.Load("", "x")
	assert.Error(t, err)
}

func TestRepositoryPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.db")

	repo, err := NewSQLiteLayoutRepositoryWithPath(path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(CaptureLayout("tidy", layoutGraph(), canvas.Viewport{Zoom: 1})))
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteLayoutRepositoryWithPath(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Load("pipeline", "tidy")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Positions["a"].X)
}
