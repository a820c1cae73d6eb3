// internal/cli/root.go
//
// Command tree for the slate binary. `slate` with no arguments launches the
// interactive browser; the subcommands expose the same operations for
// scripting and shell pipelines.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/andfors/slate/internal/config"
	"github.com/andfors/slate/internal/project"
	"github.com/andfors/slate/internal/task"
)

// ErrNotFound reports a project or task name that matched nothing on disk.
var ErrNotFound = errors.New("not found")

var (
	cfgPath string
	verbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "slate"})
)

var rootCmd = &cobra.Command{
	Use:   "slate",
	Short: "Browse and version production file trees",
	Long: `slate organizes projects, tasks and versioned workfiles on a shared
drive. Run it bare for the interactive browser, or use the subcommands
to script the same operations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse()
	},
}

// Execute runs the CLI and reports the outcome on stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: $"+config.EnvVar+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	cobra.OnInitialize(func() {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	})
}

// loadConfig resolves the app config from the --config flag or the
// environment.
func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		return config.LoadFile(cfgPath)
	}
	return config.Load()
}

// findProject scans the projects root and returns the project whose display
// or sanitized name matches name.
func findProject(cfg *config.Config, name string) (project.Project, error) {
	projects, err := cfg.FindProjects()
	if err != nil {
		return project.Project{}, err
	}
	for _, p := range projects {
		if p.Name == name || p.NameSanitized == name {
			return p, nil
		}
	}
	return project.Project{}, fmt.Errorf("project %q: %w", name, ErrNotFound)
}

// findTask walks the task tree along a slash-separated path relative to the
// work root. An empty path addresses the root itself.
func findTask(root *task.Node, relPath string) (*task.Node, error) {
	node := root
	relPath = strings.Trim(relPath, "/")
	if relPath == "" {
		return node, nil
	}
	for _, segment := range strings.Split(relPath, "/") {
		var next *task.Node
		for _, child := range node.Children {
			if child.Name == segment {
				next = child
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("task %q: %w", relPath, ErrNotFound)
		}
		node = next
	}
	return node, nil
}
