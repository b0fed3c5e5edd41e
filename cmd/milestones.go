package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/report"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

var milestonesLimit int

var milestonesCmd = &cobra.Command{
	Use:   "milestones [category]",
	Short: "List stored milestone entries for a category across games",
	Long: `List stored milestone entries for one category, most recent games first.
Without a category, print how many entries each stored category has.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMilestones,
}

func init() {
	milestonesCmd.Flags().IntVar(&milestonesLimit, "limit", 50, "maximum entries to print (0 for all)")
}

func runMilestones(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if len(args) == 0 {
		counts, err := db.MilestoneCounts()
		if err != nil {
			return fmt.Errorf("count milestones: %w", err)
		}
		if len(counts) == 0 {
			fmt.Fprintln(os.Stdout, "No milestones stored yet.")
			return nil
		}
		report.PrintCategoryCounts(os.Stdout, counts)
		return nil
	}

	rows, err := db.GetMilestonesByCategory(args[0], milestonesLimit)
	if err != nil {
		return fmt.Errorf("query milestones: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stdout, "No entries for category %q.\n", args[0])
		return nil
	}
	report.PrintCategoryListing(os.Stdout, rows)
	fmt.Fprintf(os.Stdout, "\n(%d entries)\n", len(rows))
	return nil
}
