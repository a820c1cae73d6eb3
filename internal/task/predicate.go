// internal/task/predicate.go
//
// Two mutually exclusive conventions for recognizing a task directory exist
// in the wild. They are modeled as separate Predicate implementations and
// never merged: a tree is scanned with exactly one of them, chosen by
// configuration.

package task

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Predicate decides whether a directory is a task.
type Predicate interface {
	IsTask(dir string) (bool, error)
}

// MarkerPredicate recognizes a task by the presence of the task.yaml marker
// file. This is the canonical default: it cannot false-positive on
// unrelated folders that merely contain similarly named children.
type MarkerPredicate struct{}

func (MarkerPredicate) IsTask(dir string) (bool, error) {
	_, err := os.Stat(filepath.Join(dir, MarkerName))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("task: stat marker in %s: %w", dir, err)
}

// SubdirPredicate is the legacy convention: a directory is a task when both
// named subdirectories exist. Only selected by explicit configuration.
type SubdirPredicate struct {
	Work   string
	Output string
}

func (p SubdirPredicate) IsTask(dir string) (bool, error) {
	for _, sub := range []string{p.Work, p.Output} {
		info, err := os.Stat(filepath.Join(dir, sub))
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("task: stat %s in %s: %w", sub, dir, err)
		}
		if !info.IsDir() {
			return false, nil
		}
	}
	return true, nil
}
