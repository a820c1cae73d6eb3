package client

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func rosterFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clients.yaml")
	if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAddSanitizesShortName(t *testing.T) {
	path := rosterFile(t)
	if err := Add(path, "Größe Film AB", "Größe-Film"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	clients, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(clients) != 1 {
		t.Fatalf("expected one client, got %+v", clients)
	}
	if clients[0].ShortName != "groe_film" {
		t.Fatalf("short name not sanitized: %q", clients[0].ShortName)
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	path := rosterFile(t)
	if err := Add(path, "Acme", "acme"); err != nil {
		t.Fatal(err)
	}
	if err := Add(path, "Acme", "other"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate name accepted: %v", err)
	}
	if err := Add(path, "Other", "acme"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate short name accepted: %v", err)
	}
}

func TestRemove(t *testing.T) {
	path := rosterFile(t)
	for _, c := range [][2]string{{"Acme", "acme"}, {"Beta", "beta"}} {
		if err := Add(path, c[0], c[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := Remove(path, "Acme"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	clients, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(clients) != 1 || clients[0].Name != "Beta" {
		t.Fatalf("unexpected roster after remove: %+v", clients)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing roster")
	}
}
