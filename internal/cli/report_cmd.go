package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tally/internal/cli/formatter"
	"tally/internal/domain"
	"tally/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	var weeks int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the manager report (weekly hours + opportunities)",
		RunE: func(cmd *cobra.Command, args []string) error {
			weeksBack := app.Settings.Report.WeeksBack
			if cmd.Flags().Changed("weeks") {
				weeksBack = weeks
			}

			stored, err := app.Store.List(context.Background())
			if err != nil {
				return err
			}
			if len(stored) == 0 {
				return fmt.Errorf("no entries stored, run preview first")
			}

			entries := make([]domain.TimeEntry, len(stored))
			for i, s := range stored {
				entries[i] = s.TimeEntry
			}

			now := time.Now()
			fmt.Print(formatter.FormatWeeklyHours(report.WeeklyHours(entries, weeksBack, now)))
			fmt.Println()
			fmt.Print(formatter.FormatOpportunities(report.Opportunities(entries, app.Codes, weeksBack, now)))
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of weeks back to include (default: from config)")

	return cmd
}
