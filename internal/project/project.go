// internal/project/project.go
//
// A project is a directory under the projects root whose layout is described
// by a project.yaml descriptor at its top level. The descriptor is the wire
// contract: its field names must stay stable so trees written by older
// builds (and by external tooling) keep round-tripping.

package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/andfors/slate/internal/naming"
)

// DescriptorName is the per-project descriptor file, co-located at the
// project root.
const DescriptorName = "project.yaml"

// Project describes one production and the directory roles inside it.
type Project struct {
	Name              string   `yaml:"name"`
	NameSanitized     string   `yaml:"name_sanitized"`
	PipelineDirName   string   `yaml:"pipeline_dir_name"`
	WorkDirName       string   `yaml:"work_dir_name"`
	DailiesDirName    string   `yaml:"dailies_dir_name"`
	DeliveriesDirName string   `yaml:"deliveries_dir_name"`
	ExtraDirNames     []string `yaml:"extra_dir_names"`
	WorkSubDirs       []string `yaml:"work_sub_dirs"`
}

// New builds a Project named name with the directory roles of template.
// It only constructs the record; Create materializes it on disk.
func New(name string, template Project) Project {
	return Project{
		Name:              name,
		NameSanitized:     naming.Sanitize(name),
		PipelineDirName:   template.PipelineDirName,
		WorkDirName:       template.WorkDirName,
		DailiesDirName:    template.DailiesDirName,
		DeliveriesDirName: template.DeliveriesDirName,
		ExtraDirNames:     template.ExtraDirNames,
		WorkSubDirs:       template.WorkSubDirs,
	}
}

// Path returns the project root under projectsRoot.
func (p Project) Path(projectsRoot string) string {
	return filepath.Join(projectsRoot, p.NameSanitized)
}

// WorkPath returns the directory that holds the task tree.
func (p Project) WorkPath(projectsRoot string) string {
	return filepath.Join(p.Path(projectsRoot), p.WorkDirName)
}

// DailiesPath returns the dailies directory.
func (p Project) DailiesPath(projectsRoot string) string {
	return filepath.Join(p.Path(projectsRoot), p.DailiesDirName)
}

// DeliveriesPath returns the deliveries directory.
func (p Project) DeliveriesPath(projectsRoot string) string {
	return filepath.Join(p.Path(projectsRoot), p.DeliveriesDirName)
}

// PipelinePath returns the pipeline directory.
func (p Project) PipelinePath(projectsRoot string) string {
	return filepath.Join(p.Path(projectsRoot), p.PipelineDirName)
}

// PrimaryWorkSubDir is the work subdirectory scanned for workfiles: the
// first entry of WorkSubDirs.
func (p Project) PrimaryWorkSubDir() string {
	if len(p.WorkSubDirs) == 0 {
		return ""
	}
	return p.WorkSubDirs[0]
}

// Less orders projects for deterministic display: by display name first,
// then by the derived fields.
func (p Project) Less(o Project) bool {
	if p.Name != o.Name {
		return p.Name < o.Name
	}
	if p.NameSanitized != o.NameSanitized {
		return p.NameSanitized < o.NameSanitized
	}
	return p.WorkDirName < o.WorkDirName
}

// Read loads a project descriptor from path.
func Read(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("project: read %s: %w", path, err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("project: parse %s: %w", path, err)
	}
	return p, nil
}

// Write stores the descriptor at path.
func (p Project) Write(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("project: encode descriptor: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("project: write %s: %w", path, err)
	}
	return nil
}

// Create materializes the project on disk: the root, the four role
// directories, the extra directories, and finally the descriptor. Creation
// is fail-fast; a failure partway leaves the partially-created tree in
// place rather than attempting a rollback.
func (p Project) Create(projectsRoot string) error {
	root := p.Path(projectsRoot)
	if err := os.Mkdir(root, 0o755); err != nil {
		return fmt.Errorf("project: create %s: %w", root, err)
	}

	dirs := []string{
		p.PipelinePath(projectsRoot),
		p.WorkPath(projectsRoot),
		p.DailiesPath(projectsRoot),
		p.DeliveriesPath(projectsRoot),
	}
	for _, extra := range p.ExtraDirNames {
		dirs = append(dirs, filepath.Join(root, extra))
	}
	for _, dir := range dirs {
		if err := os.Mkdir(dir, 0o755); err != nil {
			return fmt.Errorf("project: create %s: %w", dir, err)
		}
	}

	return p.Write(filepath.Join(root, DescriptorName))
}
