package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-towers/internal/config"
	"github.com/vovakirdan/tui-towers/internal/core"
	"github.com/vovakirdan/tui-towers/internal/games/towers"
	"github.com/vovakirdan/tui-towers/internal/platform/tui"
	"github.com/vovakirdan/tui-towers/internal/storage"
)

var (
	flagSlot   string
	flagNew    bool
	flagPreset string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game with the settings of a save slot.

The slot keeps the board size, sound, the seed of the next puzzle and the
unfinished board, if any. Leaving the board with Enter keeps it for
Continue; a solved board is recorded in the stats.

Controls:
  Arrows/WASD  - Move, spread or pull back
  Space        - Select a tower to flatten
  X            - Select a tower to deflatten
  Enter/Esc    - Leave the board
  R            - Restart the board
  Q/Ctrl+C     - Quit

Size presets:
  small   6x5
  medium  10x10
  large   20x15
  max     30x20

Examples:
  towers play
  towers play --slot work
  towers play --new --preset large`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSlot, "slot", storage.DefaultSlot, "Save slot name")
	playCmd.Flags().BoolVar(&flagNew, "new", false, "Discard the unfinished board in the slot")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Board size preset: small, medium, large, max")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logFile, err := openLogFile()
	var logOut io.Writer = io.Discard
	if err == nil {
		defer logFile.Close()
		logOut = logFile
	}
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flagPreset)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	settings, moves := loadSettings(store, cfg, logger)
	if flagPreset != "" {
		settings.Width, settings.Height = cfg.Field.Width, cfg.Field.Height
	}
	if flagNew {
		settings.FieldData = nil
		moves = 0
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	if needW, needH := towers.MinScreenSize(settings.Width, settings.Height); width < needW || height < needH+1 {
		fmt.Fprintf(os.Stderr, "Note: a %dx%d board needs a %dx%d terminal, this one is %dx%d\n",
			settings.Width, settings.Height, needW, needH+1, width, height)
	}

	_, err = tui.Run(settings, tui.Options{
		Store:   store,
		Slot:    flagSlot,
		Persist: store != nil,
		Moves:   moves,
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.TickRate,
			Sound:    settings.Sound,
		},
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// loadSettings reads the slot, falling back to the configured defaults
// when it is missing or unreadable.
func loadSettings(store *storage.Store, cfg config.TowersConfig, logger *log.Logger) (towers.Settings, int) {
	defaults := towers.DefaultSettings()
	defaults.Width, defaults.Height = cfg.Field.Width, cfg.Field.Height
	defaults.Sound = cfg.Sound
	defaults.Seed = cfg.InitialSeed()

	if store == nil {
		return defaults, 0
	}
	slot, err := store.LoadSlot(flagSlot)
	if err != nil {
		logger.Warn("cannot load slot", "slot", flagSlot, "error", err)
		return defaults, 0
	}
	if slot == nil {
		return defaults, 0
	}

	settings, err := towers.DecodeSettings(slot.Data)
	if err != nil {
		logger.Warn("ignoring unreadable slot", "slot", flagSlot, "error", err)
		return defaults, 0
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("slot has invalid size", "slot", flagSlot, "error", err)
		settings.Width, settings.Height = defaults.Width, defaults.Height
	}
	return settings, slot.Moves
}
