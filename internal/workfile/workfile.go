// internal/workfile/workfile.go
//
// A workfile is a versioned artifact inside a task's primary work
// subdirectory. Its on-disk name always follows the
// {name}_v{###}.{extension} convention from internal/naming.

package workfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andfors/slate/internal/naming"
)

var (
	// ErrAlreadyExists reports a destination collision; nothing is copied.
	ErrAlreadyExists = errors.New("workfile: file already exists")

	// ErrTemplateMissing reports an absent template source.
	ErrTemplateMissing = errors.New("workfile: template file not found")
)

// File represents one workfile found on disk.
type File struct {
	Name      string
	Path      string
	Extension string
	Version   int
}

// FromPath decodes path into a File. Fails with naming.ErrNotVersioned for
// names outside the convention.
func FromPath(path string) (File, error) {
	v, err := naming.Parse(path)
	if err != nil {
		return File{}, err
	}
	return File{
		Name:      v.Name,
		Path:      path,
		Extension: v.Extension,
		Version:   v.Version,
	}, nil
}

// Filename reassembles the on-disk name from the record's fields.
func (f File) Filename() string {
	return f.versioned().Filename()
}

// VersionLabel formats the version for display: v007.
func (f File) VersionLabel() string {
	return f.versioned().VersionLabel()
}

// Less is the total order over workfiles: by name, then extension, then
// version, ascending. Listings show the reverse.
func (f File) Less(o File) bool {
	if f.Name != o.Name {
		return f.Name < o.Name
	}
	if f.Extension != o.Extension {
		return f.Extension < o.Extension
	}
	return f.Version < o.Version
}

func (f File) versioned() naming.Versioned {
	return naming.Versioned{Name: f.Name, Version: f.Version, Extension: f.Extension}
}

// Find lists the workfiles in dir, latest versions first. Directories,
// files outside the naming convention and files with an ignored extension
// are skipped.
func Find(dir string, ignoreExtensions []string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("workfile: read %s: %w", dir, err)
	}

	ignored := make(map[string]bool, len(ignoreExtensions))
	for _, ext := range ignoreExtensions {
		ignored[ext] = true
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		f, err := FromPath(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		if ignored[f.Extension] {
			continue
		}
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[j].Less(files[i])
	})
	return files, nil
}
