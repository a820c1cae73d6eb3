package project

import (
	"os"
	"path/filepath"
	"testing"
)

func testTemplate() Project {
	return Project{
		PipelineDirName:   "00_pipeline",
		WorkDirName:       "02_work",
		DailiesDirName:    "03_dailies",
		DeliveriesDirName: "04_deliveries",
		ExtraDirNames:     []string{"01_preproduction"},
		WorkSubDirs:       []string{"01_work", "02_output", "03_assets"},
	}
}

func TestNewSanitizesName(t *testing.T) {
	p := New("Höstjakt 2025", testTemplate())
	if p.NameSanitized != "hostjakt2025" {
		t.Fatalf("NameSanitized = %q", p.NameSanitized)
	}
	if p.Name != "Höstjakt 2025" {
		t.Fatalf("display name changed: %q", p.Name)
	}
}

func TestPathDerivation(t *testing.T) {
	p := New("demo", testTemplate())
	root := filepath.Join("/mnt", "projects")
	if got := p.Path(root); got != filepath.Join(root, "demo") {
		t.Fatalf("Path = %s", got)
	}
	if got := p.WorkPath(root); got != filepath.Join(root, "demo", "02_work") {
		t.Fatalf("WorkPath = %s", got)
	}
	if got := p.DailiesPath(root); got != filepath.Join(root, "demo", "03_dailies") {
		t.Fatalf("DailiesPath = %s", got)
	}
	if got := p.PrimaryWorkSubDir(); got != "01_work" {
		t.Fatalf("PrimaryWorkSubDir = %s", got)
	}
}

func TestCreateWritesTreeAndDescriptor(t *testing.T) {
	root := t.TempDir()
	p := New("Demo Reel", testTemplate())
	if err := p.Create(root); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	for _, dir := range []string{
		"00_pipeline", "02_work", "03_dailies", "04_deliveries", "01_preproduction",
	} {
		info, err := os.Stat(filepath.Join(root, "demoreel", dir))
		if err != nil || !info.IsDir() {
			t.Fatalf("missing subdirectory %s: %v", dir, err)
		}
	}

	got, err := Read(filepath.Join(root, "demoreel", DescriptorName))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got.Name != "Demo Reel" || got.NameSanitized != "demoreel" {
		t.Fatalf("descriptor round trip mismatch: %+v", got)
	}
	if len(got.WorkSubDirs) != 3 || got.WorkSubDirs[0] != "01_work" {
		t.Fatalf("work_sub_dirs not preserved: %v", got.WorkSubDirs)
	}
}

func TestCreateFailsWhenRootExists(t *testing.T) {
	root := t.TempDir()
	p := New("demo", testTemplate())
	if err := os.Mkdir(p.Path(root), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := p.Create(root); err == nil {
		t.Fatal("expected error for existing project root")
	}
}

func TestFindSkipsDirsWithoutDescriptor(t *testing.T) {
	root := t.TempDir()
	if err := New("bravo", testTemplate()).Create(root); err != nil {
		t.Fatal(err)
	}
	// A bare directory is not a project.
	if err := os.Mkdir(filepath.Join(root, "scratch"), 0o755); err != nil {
		t.Fatal(err)
	}
	// Neither is a directory with a malformed descriptor.
	broken := filepath.Join(root, "broken")
	if err := os.Mkdir(broken, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(broken, DescriptorName), []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	projects, err := Find(root)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "bravo" {
		t.Fatalf("unexpected projects: %+v", projects)
	}
}

func TestFindEmptyRoot(t *testing.T) {
	projects, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("expected empty list, got %+v", projects)
	}
}

func TestFindSortsByName(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"zulu", "alpha", "mike"} {
		if err := New(name, testTemplate()).Create(root); err != nil {
			t.Fatal(err)
		}
	}
	projects, err := Find(root)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range projects {
		names = append(names, p.Name)
	}
	want := []string{"alpha", "mike", "zulu"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", names, want)
		}
	}
}

func TestFindStructural(t *testing.T) {
	root := t.TempDir()
	template := testTemplate()
	// Uniform layout without descriptors.
	for _, name := range []string{"one", "two"} {
		if err := os.MkdirAll(filepath.Join(root, name, template.PipelineDirName), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// No pipeline dir, not a project.
	if err := os.Mkdir(filepath.Join(root, "misc"), 0o755); err != nil {
		t.Fatal(err)
	}

	projects, err := FindStructural(root, template)
	if err != nil {
		t.Fatalf("FindStructural returned error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %+v", projects)
	}
	if projects[0].WorkDirName != template.WorkDirName {
		t.Fatalf("roles not taken from template: %+v", projects[0])
	}
}
