// internal/config/config.go
//
// Application configuration. A studio shares one yaml file on the network
// drive; each workstation points at it with the SLATE_CONFIG environment
// variable. The file carries per-OS roots because the same share is mounted
// under different paths on Windows, macOS and Linux.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andfors/slate/internal/project"
	"github.com/andfors/slate/internal/task"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "SLATE_CONFIG"

// Task-detection and project-discovery variants. Exactly one of each is
// active per run; they are never combined.
const (
	DetectionMarker  = "marker"
	DetectionSubdirs = "subdirs"

	DiscoveryDescriptor = "descriptor"
	DiscoveryStructural = "structural"
)

// file is the on-disk shape of the config.
type file struct {
	ProjectsDirWin   string `yaml:"projects_dir_win"`
	ProjectsDirMac   string `yaml:"projects_dir_mac"`
	ProjectsDirLinux string `yaml:"projects_dir_linux,omitempty"`

	TemplatesDirWin   string `yaml:"templates_dir_win"`
	TemplatesDirMac   string `yaml:"templates_dir_mac"`
	TemplatesDirLinux string `yaml:"templates_dir_linux,omitempty"`

	PipelineDirName   string   `yaml:"pipeline_dir_name"`
	WorkDirName       string   `yaml:"work_dir_name"`
	DailiesDirName    string   `yaml:"dailies_dir_name"`
	DeliveriesDirName string   `yaml:"deliveries_dir_name"`
	ExtraDirNames     []string `yaml:"extra_dir_names"`
	WorkSubDirs       []string `yaml:"work_sub_dirs"`

	IgnoreExtensions []string `yaml:"ignore_extensions"`
	ClientsFile      string   `yaml:"clients_file,omitempty"`

	TaskDetection    string `yaml:"task_detection,omitempty"`
	ProjectDiscovery string `yaml:"project_discovery,omitempty"`
}

// Config is the resolved runtime configuration.
type Config struct {
	// Path is the config file this Config was loaded from; empty for the
	// built-in defaults.
	Path string

	ProjectsDir  string
	TemplatesDir string

	// Template carries the directory roles every new project inherits.
	Template project.Project

	IgnoreExtensions []string
	ClientsFile      string

	TaskDetection    string
	ProjectDiscovery string
}

// Default returns the built-in configuration: the original studio layout
// with no roots bound.
func Default() *Config {
	return &Config{
		Template: project.Project{
			PipelineDirName:   "00_pipeline",
			WorkDirName:       "02_work",
			DailiesDirName:    "03_dailies",
			DeliveriesDirName: "04_deliveries",
			ExtraDirNames:     []string{"01_preproduction"},
			WorkSubDirs:       []string{"01_work", "02_output", "03_assets"},
		},
		TaskDetection:    DetectionMarker,
		ProjectDiscovery: DiscoveryDescriptor,
	}
}

// Load resolves the config file via SLATE_CONFIG and parses it.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, fmt.Errorf("config: %s is not set", EnvVar)
	}
	return LoadFile(path)
}

// LoadFile parses the config file at path, applies defaults and validates.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed file
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := Default()
	cfg.Path = path
	cfg.apply(parsed)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LogPath is where the logbook lives: next to the config file, so every
// workstation pointed at the same config appends to the same log.
func (c *Config) LogPath() string {
	if c.Path == "" {
		return filepath.Join(os.TempDir(), "slate.log")
	}
	return filepath.Join(filepath.Dir(c.Path), "slate.log")
}

// Predicate returns the configured task predicate.
func (c *Config) Predicate() task.Predicate {
	if c.TaskDetection == DetectionSubdirs {
		sub := task.SubdirPredicate{Work: "01_work", Output: "02_output"}
		if len(c.Template.WorkSubDirs) >= 2 {
			sub.Work = c.Template.WorkSubDirs[0]
			sub.Output = c.Template.WorkSubDirs[1]
		}
		return sub
	}
	return task.MarkerPredicate{}
}

// FindProjects runs the configured discovery variant over the projects
// root.
func (c *Config) FindProjects() ([]project.Project, error) {
	if c.ProjectDiscovery == DiscoveryStructural {
		return project.FindStructural(c.ProjectsDir, c.Template)
	}
	return project.Find(c.ProjectsDir)
}

func (c *Config) apply(f file) {
	c.ProjectsDir = pickRoot(f.ProjectsDirWin, f.ProjectsDirMac, f.ProjectsDirLinux)
	c.TemplatesDir = pickRoot(f.TemplatesDirWin, f.TemplatesDirMac, f.TemplatesDirLinux)

	if f.PipelineDirName != "" {
		c.Template.PipelineDirName = f.PipelineDirName
	}
	if f.WorkDirName != "" {
		c.Template.WorkDirName = f.WorkDirName
	}
	if f.DailiesDirName != "" {
		c.Template.DailiesDirName = f.DailiesDirName
	}
	if f.DeliveriesDirName != "" {
		c.Template.DeliveriesDirName = f.DeliveriesDirName
	}
	if f.ExtraDirNames != nil {
		c.Template.ExtraDirNames = f.ExtraDirNames
	}
	if f.WorkSubDirs != nil {
		c.Template.WorkSubDirs = f.WorkSubDirs
	}

	c.IgnoreExtensions = f.IgnoreExtensions
	c.ClientsFile = f.ClientsFile
	if f.TaskDetection != "" {
		c.TaskDetection = strings.ToLower(strings.TrimSpace(f.TaskDetection))
	}
	if f.ProjectDiscovery != "" {
		c.ProjectDiscovery = strings.ToLower(strings.TrimSpace(f.ProjectDiscovery))
	}
}

func (c *Config) validate() error {
	if c.ProjectsDir == "" {
		return fmt.Errorf("no projects dir configured for %s", runtime.GOOS)
	}
	if c.TemplatesDir == "" {
		return fmt.Errorf("no templates dir configured for %s", runtime.GOOS)
	}
	if len(c.Template.WorkSubDirs) == 0 {
		return fmt.Errorf("work_sub_dirs must not be empty")
	}
	switch c.TaskDetection {
	case DetectionMarker, DetectionSubdirs:
	default:
		return fmt.Errorf("task_detection must be %q or %q", DetectionMarker, DetectionSubdirs)
	}
	switch c.ProjectDiscovery {
	case DiscoveryDescriptor, DiscoveryStructural:
	default:
		return fmt.Errorf("project_discovery must be %q or %q", DiscoveryDescriptor, DiscoveryStructural)
	}
	return nil
}

// pickRoot selects the root for the running OS. Linux installations often
// mount the share at the macOS path, so the mac entry doubles as the
// fallback.
func pickRoot(win, mac, linux string) string {
	switch runtime.GOOS {
	case "windows":
		return win
	case "darwin":
		return mac
	default:
		if linux != "" {
			return linux
		}
		return mac
	}
}
