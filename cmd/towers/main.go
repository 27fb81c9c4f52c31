// towers is a terminal puzzle game: spread every numbered tower over the
// empty tiles until the board is covered and every tower is flat.
//
// Usage:
//
//	towers play              - Play in the terminal
//	towers generate          - Print a generated puzzle
//	towers stats             - Show solved puzzles
//	towers slots             - List or delete save slots
//	towers serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.towers/configs, ./configs)
//	--db <path>         - Database path (default: ~/.towers/towers.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-towers/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "towers",
	Short: "Towers - flatten every tower",
	Long: `Towers is a puzzle game for the terminal.

Every number on the board is a tower of that height. Spread the towers in
straight arms over the empty tiles until every tile is covered and every
tower is flat.

Available commands:
  play      - Play in the terminal
  generate  - Print a generated puzzle
  stats     - Show solved puzzles
  slots     - List or delete save slots
  serve     - Start SSH server for remote play

Examples:
  towers play
  towers play --new --preset large
  towers generate --width 8 --height 6 --solution
  towers serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.towers/towers.db", "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "towers",
		Level:           level,
	}), nil
}

// openLogFile opens the log file used while the terminal belongs to the game.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".towers")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "towers.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// loadConfig loads and validates the configuration, applying preset when set.
func loadConfig(preset string) (config.TowersConfig, error) {
	cfg, err := config.LoadTowers(flagConfig)
	if err != nil {
		return cfg, err
	}
	if preset != "" {
		if err := config.ApplyPreset(&cfg, config.SizePreset(preset)); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}
