// internal/workfile/version.go

package workfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// VersionUp copies f to a sibling path carrying version+1 and returns the
// new record. If that path already exists the call fails with
// ErrAlreadyExists and nothing is copied. The existence check and the copy
// are two separate filesystem operations; two racing invocations can both
// pass the check, in which case the later copy wins.
func VersionUp(f File) (File, error) {
	next := File{
		Name:      f.Name,
		Extension: f.Extension,
		Version:   f.Version + 1,
	}
	next.Path = filepath.Join(filepath.Dir(f.Path), next.Filename())

	if _, err := os.Stat(next.Path); err == nil {
		return File{}, fmt.Errorf("%w: %s", ErrAlreadyExists, next.Filename())
	} else if !errors.Is(err, fs.ErrNotExist) {
		return File{}, fmt.Errorf("workfile: stat %s: %w", next.Path, err)
	}

	if err := copyFile(f.Path, next.Path); err != nil {
		return File{}, err
	}
	return next, nil
}

// copyFile copies src to dst verbatim.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("workfile: open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("workfile: create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("workfile: copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("workfile: close %s: %w", dst, err)
	}
	return nil
}
