package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vertical-vanguard/internal/platform/tui"
	"github.com/vovakirdan/vertical-vanguard/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `Show the run journal, newest first.

In a terminal this opens an interactive table: Enter watches the selected
run, X deletes it. With --plain, or when output is not a terminal, the runs
are printed as text.

Examples:
  vanguard runs
  vanguard runs --plain --limit 5`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationTerminal: "true"},
	RunE:        runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs as text")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to print with --plain")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer closeStore(store)

	width, height, termErr := term.GetSize(int(os.Stdout.Fd()))
	if flagPlain || termErr != nil {
		return printRuns(store)
	}

	id, err := tui.RunHistory(store, width, height)
	if err != nil || id == 0 {
		return err
	}
	return watchRun(store, id)
}

func printRuns(store *storage.Store) error {
	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Finish a game with 'vanguard play' to record one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-6s  %-16s  %-8s  %-5s  %-6s  %-6s  %s\n", "ID", "Date", "Score", "Level", "Time", "Preset", "Seed")
	fmt.Printf("  %-6s  %-16s  %-8s  %-5s  %-6s  %-6s  %s\n", "--", "----", "-----", "-----", "----", "------", "----")

	for _, r := range runs {
		secs := int(r.Elapsed)
		fmt.Printf("  %-6d  %-16s  %-8d  %-5d  %2d:%02d   %-6s  %d\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Score, r.Level,
			secs/60, secs%60, r.Preset, r.Seed)
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("%d runs, %d ticks simulated, best level %d\n", stats.Runs, stats.TotalTicks, stats.BestLevel)
	}
	return nil
}
