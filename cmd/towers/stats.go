package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-towers/internal/platform/tui"
	"github.com/vovakirdan/tui-towers/internal/storage"
)

var (
	flagStatsPlain bool
	flagStatsLimit int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show solved puzzles",
	Long: `Display the solved puzzles and the best results per board size.

In a terminal the stats open in an interactive table. With --plain, or
when the output is not a terminal, a text table is printed instead.

Examples:
  towers stats
  towers stats --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsPlain, "plain", false, "Print a text table instead of the interactive view")
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of recent solves to print")
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagStatsPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		if err := tui.RunStats(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if err := printStats(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
	}
}

func printStats(store *storage.Store) error {
	sizes, err := store.SolveStats()
	if err != nil {
		return err
	}
	if len(sizes) == 0 {
		fmt.Println("No puzzles solved yet.")
		fmt.Println()
		fmt.Println("Run 'towers play' to start one.")
		return nil
	}

	solves, err := store.RecentSolves(flagStatsLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Size\tSolved\tBest\tAverage\tLast")
	for _, s := range sizes {
		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%.1f\t%s\n",
			s.Width, s.Height, s.Solved, s.BestMoves, s.AvgMoves, s.LastSolved.Format("2006-01-02"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Date\tSize\tTowers\tMoves\tSeed")
	for _, s := range solves {
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t%s\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Width, s.Height, s.Towers, s.Moves, s.Seed)
	}
	return w.Flush()
}
