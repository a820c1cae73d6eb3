// internal/project/discovery.go
//
// Discovery produces the full project list on every call; callers replace
// their previous list wholesale, there is no diffing.

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Find scans the immediate children of projectsRoot and returns every child
// that carries a readable project.yaml descriptor. Children without one, or
// with one that fails to parse, are skipped. An empty root yields an empty
// list and no error.
func Find(projectsRoot string) ([]Project, error) {
	entries, err := os.ReadDir(projectsRoot)
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", projectsRoot, err)
	}

	var projects []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		descriptor := filepath.Join(projectsRoot, entry.Name(), DescriptorName)
		if _, err := os.Stat(descriptor); err != nil {
			continue
		}
		p, err := Read(descriptor)
		if err != nil {
			continue
		}
		projects = append(projects, p)
	}

	sortProjects(projects)
	return projects, nil
}

// FindStructural is the legacy discovery variant: any child that contains a
// directory named like the template's pipeline dir counts as a project, and
// its record is synthesized from the template's roles. It requires a uniform
// layout and cannot express per-project deviation, which is why descriptor
// discovery is the default; this variant exists only for trees created
// before descriptors were introduced.
func FindStructural(projectsRoot string, template Project) ([]Project, error) {
	entries, err := os.ReadDir(projectsRoot)
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", projectsRoot, err)
	}

	var projects []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pipeline := filepath.Join(projectsRoot, entry.Name(), template.PipelineDirName)
		info, err := os.Stat(pipeline)
		if err != nil || !info.IsDir() {
			continue
		}
		p := New(entry.Name(), template)
		// The directory name is already the on-disk identifier.
		p.NameSanitized = entry.Name()
		projects = append(projects, p)
	}

	sortProjects(projects)
	return projects, nil
}

func sortProjects(projects []Project) {
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Less(projects[j])
	})
}
