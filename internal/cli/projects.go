package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andfors/slate/internal/client"
	"github.com/andfors/slate/internal/project"
)

var projectClient string

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects under the projects root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		projects, err := cfg.FindProjects()
		if err != nil {
			return err
		}
		for _, p := range projects {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.Name, p.Path(cfg.ProjectsDir))
		}
		return nil
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project from the configured template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		name := args[0]
		if projectClient != "" {
			prefix, err := clientShortName(cfg.ClientsFile, projectClient)
			if err != nil {
				return err
			}
			name = prefix + "_" + name
		}
		p := project.New(name, cfg.Template)
		if err := p.Create(cfg.ProjectsDir); err != nil {
			return err
		}
		logger.Info("created project", "name", p.Name, "path", p.Path(cfg.ProjectsDir))
		return nil
	},
}

// clientShortName resolves a roster entry by display or short name and
// returns its short name.
func clientShortName(rosterPath, name string) (string, error) {
	if rosterPath == "" {
		return "", fmt.Errorf("no clients_file configured")
	}
	clients, err := client.Load(rosterPath)
	if err != nil {
		return "", err
	}
	for _, c := range clients {
		if c.Name == name || c.ShortName == name {
			return c.ShortName, nil
		}
	}
	return "", fmt.Errorf("client %q: %w", name, ErrNotFound)
}

func init() {
	projectsCreateCmd.Flags().StringVar(&projectClient, "client", "", "prefix the project name with this client's short name")
	projectsCmd.AddCommand(projectsCreateCmd)
	rootCmd.AddCommand(projectsCmd)
}
