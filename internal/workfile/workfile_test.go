package workfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/andfors/slate/internal/naming"
)

func writeWorkfile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromPath(t *testing.T) {
	f, err := FromPath("/work/shot010_comp_v001.nk")
	if err != nil {
		t.Fatalf("FromPath returned error: %v", err)
	}
	if f.Name != "shot010_comp" || f.Version != 1 || f.Extension != "nk" {
		t.Fatalf("unexpected file: %+v", f)
	}
	if f.Filename() != "shot010_comp_v001.nk" {
		t.Fatalf("Filename = %s", f.Filename())
	}
}

func TestFromPathRejectsUnversioned(t *testing.T) {
	if _, err := FromPath("/work/reference.jpg"); !errors.Is(err, naming.ErrNotVersioned) {
		t.Fatalf("expected ErrNotVersioned, got %v", err)
	}
}

func TestFindOrdersLatestFirst(t *testing.T) {
	dir := t.TempDir()
	writeWorkfile(t, dir, "shot010_comp_v001.nk", "one")
	writeWorkfile(t, dir, "shot010_comp_v003.nk", "three")
	writeWorkfile(t, dir, "shot010_comp_v002.nk", "two")
	writeWorkfile(t, dir, "shot010_anim_v001.ma", "anim")
	// Skipped: not versioned, ignored extension, directory.
	writeWorkfile(t, dir, "notes.txt", "skip")
	writeWorkfile(t, dir, "shot010_comp_v001.autosave", "skip")
	if err := os.Mkdir(filepath.Join(dir, "backup"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := Find(dir, []string{"autosave"})
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("expected 4 files, got %+v", files)
	}
	// Reverse of the (name, extension, version) ascending order.
	if files[0].Filename() != "shot010_comp_v003.nk" {
		t.Fatalf("latest first violated: %s", files[0].Filename())
	}
	if files[3].Filename() != "shot010_anim_v001.ma" {
		t.Fatalf("unexpected last entry: %s", files[3].Filename())
	}
}

func TestFindMissingDir(t *testing.T) {
	if _, err := Find(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestVersionUpTwice(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkfile(t, dir, "shot010_comp_v001.nk", "payload")
	f, err := FromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	second, err := VersionUp(f)
	if err != nil {
		t.Fatalf("VersionUp returned error: %v", err)
	}
	if second.Version != 2 || second.Filename() != "shot010_comp_v002.nk" {
		t.Fatalf("unexpected result: %+v", second)
	}
	third, err := VersionUp(second)
	if err != nil {
		t.Fatalf("second VersionUp returned error: %v", err)
	}
	if third.Version != 3 {
		t.Fatalf("unexpected version: %+v", third)
	}

	data, err := os.ReadFile(third.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("bytes not copied verbatim: %q", data)
	}
}

func TestVersionUpRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkfile(t, dir, "shot010_comp_v001.nk", "old")
	writeWorkfile(t, dir, "shot010_comp_v002.nk", "existing")
	f, err := FromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := VersionUp(f); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "shot010_comp_v002.nk"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "existing" {
		t.Fatal("existing file was overwritten")
	}
}
