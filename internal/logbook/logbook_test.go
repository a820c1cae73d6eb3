package logbook

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendAndTail(t *testing.T) {
	lb, err := New(filepath.Join(t.TempDir(), "logs", "slate.log"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	lb.Infof("opened project %s", "demo")
	lb.Warnf("refresh failed once")
	lb.Errorf("version up failed: %s", "exists")

	lines := lb.Tail(10)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "INFO") || !strings.Contains(lines[0], "demo") {
		t.Fatalf("first line: %s", lines[0])
	}
	if !strings.Contains(lines[2], "ERROR") {
		t.Fatalf("last line: %s", lines[2])
	}
}

func TestTailKeepsOnlyMostRecent(t *testing.T) {
	lb, err := New(filepath.Join(t.TempDir(), "slate.log"))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		lb.Infof("entry %02d", i)
	}
	lines := lb.Tail(5)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "entry 15") || !strings.HasSuffix(lines[4], "entry 19") {
		t.Fatalf("unexpected window: %v", lines)
	}
}

func TestTailOnMissingFile(t *testing.T) {
	lb, err := New(filepath.Join(t.TempDir(), "slate.log"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := lb.Tail(5); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var lb *Logbook
	lb.Infof("ignored")
	if lb.Tail(3) != nil {
		t.Fatal("nil logbook returned lines")
	}
	if lb.Path() != "" {
		t.Fatal("nil logbook returned a path")
	}
}
