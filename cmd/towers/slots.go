package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-towers/internal/games/towers"
	"github.com/vovakirdan/tui-towers/internal/storage"
)

var flagSlotsDelete string

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List or delete save slots",
	Long: `Shows every save slot with its board size and whether it holds an
unfinished board.

Examples:
  towers slots
  towers slots --delete work`,
	Args: cobra.NoArgs,
	Run:  runSlots,
}

func init() {
	slotsCmd.Flags().StringVar(&flagSlotsDelete, "delete", "", "Delete the named slot")
}

func runSlots(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagSlotsDelete != "" {
		if err := store.DeleteSlot(flagSlotsDelete); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Deleted slot %q\n", flagSlotsDelete)
		return
	}

	slots, err := store.ListSlots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing slots: %v\n", err)
		return
	}
	if len(slots) == 0 {
		fmt.Println("No saved slots.")
		return
	}

	// Calculate column widths
	maxNameLen := 4 // "Slot" header
	for _, s := range slots {
		if len(s.Name) > maxNameLen {
			maxNameLen = len(s.Name)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-9s  %s\n", maxNameLen, "Slot", "Size", "Board", "Updated")
	fmt.Printf("  %-*s  %-7s  %-9s  %s\n", maxNameLen, "----", "----", "-----", "-------")
	for _, s := range slots {
		size, board := "?", "unreadable"
		if settings, err := towers.DecodeSettings(s.Data, towers.StrictSeedDecode()); err == nil {
			size = fmt.Sprintf("%dx%d", settings.Width, settings.Height)
			board = "-"
			if settings.CanContinue() {
				board = fmt.Sprintf("%d moves", s.Moves)
			}
		}
		fmt.Printf("  %-*s  %-7s  %-9s  %s\n", maxNameLen, s.Name, size, board, s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'towers play --slot <name>' to play a slot.")
}
