// internal/task/task.go
//
// The task tree mirrors a project's work directory: tasks are leaves, every
// other directory is a group that only nests further children. The tree is
// rebuilt wholesale on every refresh and nodes carry no identity across
// rebuilds.

package task

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MarkerName is the per-task descriptor file, co-located inside the task
// directory. Its presence is what makes a directory a task under the
// default predicate.
const MarkerName = "task.yaml"

// Metadata is the task marker descriptor. Field names are the wire
// contract.
type Metadata struct {
	IsTask bool `yaml:"is_task"`
}

// Node is one directory in the task tree.
type Node struct {
	Name     string
	Path     string
	IsTask   bool
	Children []*Node
}

// Build walks root into a task tree. A directory accepted by pred becomes a
// leaf and its contents are never inspected, even if subdirectories exist.
// Otherwise every child directory is recursed into, in filesystem
// enumeration order. Any unreadable child aborts the whole build: a partial
// tree is unsafe to present as authoritative.
func Build(root string, pred Predicate) (*Node, error) {
	node := &Node{Name: filepath.Base(root), Path: root}

	isTask, err := pred.IsTask(root)
	if err != nil {
		return nil, err
	}
	if isTask {
		node.IsTask = true
		return node, nil
	}

	dir, err := os.Open(root)
	if err != nil {
		return nil, fmt.Errorf("task: open %s: %w", root, err)
	}
	// ReadDir on the handle keeps enumeration order; os.ReadDir would sort.
	entries, err := dir.ReadDir(-1)
	dir.Close()
	if err != nil {
		return nil, fmt.Errorf("task: read %s: %w", root, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		child, err := Build(filepath.Join(root, entry.Name()), pred)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

// CreateTask creates a task directory named name under n, with one
// directory per work subdirectory and the task marker. Creation is
// fail-fast; the caller refreshes the tree afterwards either way.
func (n *Node) CreateTask(name string, workSubDirs []string) error {
	taskPath := filepath.Join(n.Path, name)
	if err := os.Mkdir(taskPath, 0o755); err != nil {
		return fmt.Errorf("task: create %s: %w", taskPath, err)
	}
	for _, sub := range workSubDirs {
		dir := filepath.Join(taskPath, sub)
		if err := os.Mkdir(dir, 0o755); err != nil {
			return fmt.Errorf("task: create %s: %w", dir, err)
		}
	}
	return writeMarker(taskPath)
}

// CreateFolder creates a plain group directory named name under n.
func (n *Node) CreateFolder(name string) error {
	dir := filepath.Join(n.Path, name)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return fmt.Errorf("task: create %s: %w", dir, err)
	}
	return nil
}

// WorkfileDir returns the subdirectory of this task scanned for workfiles.
func (n *Node) WorkfileDir(primarySubDir string) string {
	return filepath.Join(n.Path, primarySubDir)
}

// OutputDir returns the task's output subdirectory for the given work
// subdirectory list (the second entry, when present).
func (n *Node) OutputDir(workSubDirs []string) string {
	if len(workSubDirs) < 2 {
		return n.Path
	}
	return filepath.Join(n.Path, workSubDirs[1])
}

func writeMarker(taskPath string) error {
	data, err := yaml.Marshal(Metadata{IsTask: true})
	if err != nil {
		return fmt.Errorf("task: encode marker: %w", err)
	}
	path := filepath.Join(taskPath, MarkerName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("task: write %s: %w", path, err)
	}
	return nil
}
