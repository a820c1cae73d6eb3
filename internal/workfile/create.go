// internal/workfile/create.go
//
// New workfiles are instantiated from DCC templates: each authoring
// application registered under the templates root contributes an app.yaml
// descriptor and a template file, and creation is a verbatim copy of that
// template to the canonical first-version path. No substitution happens.

package workfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/andfors/slate/internal/project"
	"github.com/andfors/slate/internal/task"
)

// DccDescriptorName is the per-application descriptor inside each
// templates-root subdirectory.
const DccDescriptorName = "app.yaml"

// Dcc describes one authoring application: how its files are named and
// where its pristine template lives. Rediscovered fresh on every scan.
type Dcc struct {
	Name         string `yaml:"name"`
	Extension    string `yaml:"extension"` // with the leading dot, e.g. ".nk"
	TemplatePath string `yaml:"-"`
}

// NewFilename composes the canonical first-version filename:
// {project}_{task}_{logicalName}_v001{ext}, with the logicalName segment
// omitted when it is empty. Both shapes are valid.
func NewFilename(logicalName string, tsk *task.Node, proj project.Project, dcc Dcc) string {
	if logicalName != "" {
		return fmt.Sprintf("%s_%s_%s_v001%s", proj.NameSanitized, tsk.Name, logicalName, dcc.Extension)
	}
	return fmt.Sprintf("%s_%s_v001%s", proj.NameSanitized, tsk.Name, dcc.Extension)
}

// Create instantiates a new first-version workfile for tsk from the dcc
// template. Preconditions, checked in order: the destination must not exist
// and the template must. On success the template bytes are copied verbatim.
func Create(logicalName string, tsk *task.Node, proj project.Project, dcc Dcc) error {
	dest := filepath.Join(tsk.WorkfileDir(proj.PrimaryWorkSubDir()), NewFilename(logicalName, tsk, proj, dcc))

	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, filepath.Base(dest))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("workfile: stat %s: %w", dest, err)
	}

	if _, err := os.Stat(dcc.TemplatePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTemplateMissing, dcc.TemplatePath)
		}
		return fmt.Errorf("workfile: stat %s: %w", dcc.TemplatePath, err)
	}

	return copyFile(dcc.TemplatePath, dest)
}

// FindDccs scans the immediate subdirectories of templatesRoot. A
// subdirectory yields a Dcc when it carries a parseable app.yaml and a
// template file named template{extension}; candidates missing either are
// skipped.
func FindDccs(templatesRoot string) ([]Dcc, error) {
	entries, err := os.ReadDir(templatesRoot)
	if err != nil {
		return nil, fmt.Errorf("workfile: read %s: %w", templatesRoot, err)
	}

	var dccs []Dcc
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(templatesRoot, entry.Name())
		data, err := os.ReadFile(filepath.Join(dir, DccDescriptorName))
		if err != nil {
			continue
		}
		var dcc Dcc
		if err := yaml.Unmarshal(data, &dcc); err != nil {
			continue
		}
		dcc.TemplatePath = filepath.Join(dir, "template"+dcc.Extension)
		if _, err := os.Stat(dcc.TemplatePath); err != nil {
			continue
		}
		dccs = append(dccs, dcc)
	}

	return dccs, nil
}
