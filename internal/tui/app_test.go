package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andfors/slate/internal/config"
	"github.com/andfors/slate/internal/project"
	"github.com/andfors/slate/internal/task"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.ProjectsDir = t.TempDir()
	cfg.TemplatesDir = t.TempDir()
	return cfg
}

func createProject(t *testing.T, cfg *config.Config, name string) project.Project {
	t.Helper()
	p := project.New(name, cfg.Template)
	if err := p.Create(cfg.ProjectsDir); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewAppListsProjects(t *testing.T) {
	cfg := testConfig(t)
	createProject(t, cfg, "Alpha")
	createProject(t, cfg, "Beta")

	app := NewApp(cfg, nil)
	if len(app.projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(app.projects))
	}
	if app.projects[0].Name != "Alpha" {
		t.Fatalf("projects out of order: %s", app.projects[0].Name)
	}
}

func TestOpenProjectBuildsTaskRows(t *testing.T) {
	cfg := testConfig(t)
	p := createProject(t, cfg, "Demo")

	work := p.WorkPath(cfg.ProjectsDir)
	root := &task.Node{Path: work}
	if err := root.CreateFolder("sequences"); err != nil {
		t.Fatal(err)
	}
	seq := &task.Node{Path: filepath.Join(work, "sequences")}
	if err := seq.CreateTask("shot010", cfg.Template.WorkSubDirs); err != nil {
		t.Fatal(err)
	}

	app := NewApp(cfg, nil)
	app.openProject(p)

	if app.current == nil || app.current.Name != "Demo" {
		t.Fatal("project not opened")
	}
	if len(app.taskRows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(app.taskRows))
	}
	if app.taskRows[0].Name != "sequences" || app.taskRows[0].IsTask {
		t.Fatalf("first row should be the group: %+v", app.taskRows[0])
	}
	if app.taskRows[1].Name != "shot010" || !app.taskRows[1].IsTask {
		t.Fatalf("second row should be the task: %+v", app.taskRows[1])
	}
}

func TestFailedOpenKeepsProjectListing(t *testing.T) {
	cfg := testConfig(t)
	p := createProject(t, cfg, "Demo")

	app := NewApp(cfg, nil)
	if err := os.RemoveAll(p.WorkPath(cfg.ProjectsDir)); err != nil {
		t.Fatal(err)
	}
	app.openProject(p)

	if app.current != nil || app.tree != nil {
		t.Fatal("failed open should clear the tree selection")
	}
	if len(app.projects) != 1 {
		t.Fatalf("project listing lost: %d", len(app.projects))
	}
	if app.statusMsg == "" {
		t.Fatal("expected a status message")
	}
}

func TestFlattenKeepsChildOrder(t *testing.T) {
	root := &task.Node{
		Children: []*task.Node{
			{Name: "b", Children: []*task.Node{{Name: "b1", IsTask: true}}},
			{Name: "a", IsTask: true},
		},
	}
	rows := flatten(root)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	got := []string{rows[0].node.Name, rows[1].node.Name, rows[2].node.Name}
	want := []string{"b", "b1", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row order %v, want %v", got, want)
		}
	}
	if rows[1].depth != 1 {
		t.Fatalf("nested depth: %d", rows[1].depth)
	}
}
