package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/andfors/slate/internal/client"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List the client roster",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := clientsPath()
		if err != nil {
			return err
		}
		clients, err := client.Load(path)
		if err != nil {
			return err
		}
		for _, c := range clients {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Name, c.ShortName)
		}
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add <name> <short-name>",
	Short: "Add a client to the roster",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := clientsPath()
		if err != nil {
			return err
		}
		// A missing roster is a fresh one, not an error.
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if err := client.Save(path, nil); err != nil {
				return err
			}
		}
		return client.Add(path, args[0], args[1])
	},
}

var clientsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a client from the roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := clientsPath()
		if err != nil {
			return err
		}
		return client.Remove(path, args[0])
	},
}

func clientsPath() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.ClientsFile == "" {
		return "", fmt.Errorf("no clients_file configured in %s", cfg.Path)
	}
	return cfg.ClientsFile, nil
}

func init() {
	clientsCmd.AddCommand(clientsAddCmd, clientsRemoveCmd)
	rootCmd.AddCommand(clientsCmd)
}
