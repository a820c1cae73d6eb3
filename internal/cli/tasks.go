package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andfors/slate/internal/config"
	"github.com/andfors/slate/internal/task"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks <project>",
	Short: "Print a project's task tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := findProject(cfg, args[0])
		if err != nil {
			return err
		}
		tree, err := task.Build(p.WorkPath(cfg.ProjectsDir), cfg.Predicate())
		if err != nil {
			return err
		}
		printTree(cmd.OutOrStdout(), tree, 0)
		return nil
	},
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create <project> <parent> <name>",
	Short: "Create a task under a group (use \"\" or / for the work root)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, cfg, err := resolveGroup(args[0], args[1])
		if err != nil {
			return err
		}
		if err := parent.CreateTask(args[2], cfg.Template.WorkSubDirs); err != nil {
			return err
		}
		logger.Info("created task", "name", args[2], "under", parent.Path)
		return nil
	},
}

var tasksMkdirCmd = &cobra.Command{
	Use:   "mkdir <project> <parent> <name>",
	Short: "Create a plain group directory under a group",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, _, err := resolveGroup(args[0], args[1])
		if err != nil {
			return err
		}
		if err := parent.CreateFolder(args[2]); err != nil {
			return err
		}
		logger.Info("created folder", "name", args[2], "under", parent.Path)
		return nil
	},
}

// resolveGroup finds the named project, builds its tree and walks to the
// slash-separated group path. Tasks cannot nest further work.
func resolveGroup(projectName, groupPath string) (*task.Node, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := findProject(cfg, projectName)
	if err != nil {
		return nil, nil, err
	}
	tree, err := task.Build(p.WorkPath(cfg.ProjectsDir), cfg.Predicate())
	if err != nil {
		return nil, nil, err
	}
	node, err := findTask(tree, groupPath)
	if err != nil {
		return nil, nil, err
	}
	if node.IsTask {
		return nil, nil, fmt.Errorf("%s is a task, not a group", node.Name)
	}
	return node, cfg, nil
}

func printTree(w io.Writer, node *task.Node, depth int) {
	for _, child := range node.Children {
		suffix := "/"
		if child.IsTask {
			suffix = ""
		}
		fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), child.Name, suffix)
		printTree(w, child, depth+1)
	}
}

func init() {
	tasksCmd.AddCommand(tasksCreateCmd, tasksMkdirCmd)
	rootCmd.AddCommand(tasksCmd)
}
