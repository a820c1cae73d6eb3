package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andfors/slate/internal/config"
	"github.com/andfors/slate/internal/project"
	"github.com/andfors/slate/internal/shellopen"
	"github.com/andfors/slate/internal/task"
	"github.com/andfors/slate/internal/workfile"
)

var filesCmd = &cobra.Command{
	Use:   "files <project> <task>",
	Short: "List a task's workfiles, latest versions first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, p, node, err := resolveWorkTask(args[0], args[1])
		if err != nil {
			return err
		}
		files, err := workfile.Find(node.WorkfileDir(p.PrimaryWorkSubDir()), cfg.IgnoreExtensions)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", f.Filename(), f.Path)
		}
		return nil
	},
}

var filesNewCmd = &cobra.Command{
	Use:   "new <project> <task> <application> [name]",
	Short: "Create a first-version workfile from an application template",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, p, node, err := resolveWorkTask(args[0], args[1])
		if err != nil {
			return err
		}
		dcc, err := findDcc(cfg, args[2])
		if err != nil {
			return err
		}
		logicalName := ""
		if len(args) == 4 {
			logicalName = args[3]
		}
		if err := workfile.Create(logicalName, node, p, dcc); err != nil {
			return err
		}
		logger.Info("created workfile", "name", workfile.NewFilename(logicalName, node, p, dcc))
		return nil
	},
}

var filesUpCmd = &cobra.Command{
	Use:   "up <path>",
	Short: "Copy a workfile to its next version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := workfile.FromPath(args[0])
		if err != nil {
			return err
		}
		next, err := workfile.VersionUp(f)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), next.Path)
		return nil
	},
}

var filesOpenCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a file with its default application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return shellopen.Open(args[0])
	},
}

var filesRevealCmd = &cobra.Command{
	Use:   "reveal <path>",
	Short: "Reveal a path in the platform file browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return shellopen.Reveal(args[0])
	},
}

// resolveWorkTask walks to a tree node that must be a task.
func resolveWorkTask(projectName, taskPath string) (*config.Config, project.Project, *task.Node, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, project.Project{}, nil, err
	}
	p, err := findProject(cfg, projectName)
	if err != nil {
		return nil, project.Project{}, nil, err
	}
	tree, err := task.Build(p.WorkPath(cfg.ProjectsDir), cfg.Predicate())
	if err != nil {
		return nil, project.Project{}, nil, err
	}
	node, err := findTask(tree, taskPath)
	if err != nil {
		return nil, project.Project{}, nil, err
	}
	if !node.IsTask {
		return nil, project.Project{}, nil, fmt.Errorf("%s is a group, not a task", node.Name)
	}
	return cfg, p, node, nil
}

// findDcc matches a registered application by name or extension.
func findDcc(cfg *config.Config, name string) (workfile.Dcc, error) {
	dccs, err := workfile.FindDccs(cfg.TemplatesDir)
	if err != nil {
		return workfile.Dcc{}, err
	}
	for _, d := range dccs {
		if d.Name == name || d.Extension == name || d.Extension == "."+name {
			return d, nil
		}
	}
	return workfile.Dcc{}, fmt.Errorf("application %q: %w", name, ErrNotFound)
}

func init() {
	filesCmd.AddCommand(filesNewCmd, filesUpCmd, filesOpenCmd, filesRevealCmd)
	rootCmd.AddCommand(filesCmd)
}
