package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andfors/slate/internal/config"
	"github.com/andfors/slate/internal/logbook"
	"github.com/andfors/slate/internal/tui"
)

// runBrowse starts the interactive browser. The logbook lands next to the
// config file so every workstation shares one log. An unloadable config is
// not fatal here: the browser comes up on the built-in defaults and every
// scan reports its own failure.
func runBrowse() error {
	cfg, err := loadConfig()
	if err != nil {
		logger.Warn("using built-in defaults", "err", err)
		cfg = config.Default()
	}
	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		logger.Warn("logbook unavailable", "err", err)
		lb = nil
	}
	app := tui.NewApp(cfg, lb)
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
