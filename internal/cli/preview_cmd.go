package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tally/internal/cli/formatter"
	"tally/internal/loader"
)

func newPreviewCmd(app *App) *cobra.Command {
	var noAI bool
	var weeks int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Build the normalized entry table from the calendar export",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			weeksBack := app.Settings.Report.WeeksBack
			if cmd.Flags().Changed("weeks") {
				weeksBack = weeks
			}

			useAI := app.Settings.AI.Enabled && !noAI
			mode := "AI-enabled"
			if !useAI {
				mode = "keyword-only"
			}
			fmt.Printf("Generating preview (%s, last %d weeks)...\n\n", mode, weeksBack)

			events, err := loader.LoadAndFilter(app.Settings.Paths.CalendarInput, app.Exclusions, weeksBack, time.Now())
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return fmt.Errorf("no events in range, check the calendar export")
			}

			var stop func()
			if useAI {
				stop = formatter.StartSpinner("Detecting clients...")
			}
			result, err := app.NewPipeline(useAI).Run(ctx, events)
			if stop != nil {
				stop()
			}
			if err != nil {
				return err
			}

			if err := app.Store.ReplaceAll(ctx, result.Entries); err != nil {
				return err
			}

			fmt.Print(formatter.FormatEntries(result.Entries))
			if s := formatter.FormatShortfalls(result.Shortfalls); s != "" {
				fmt.Println()
				fmt.Print(s)
			}

			dataRows := 0
			weekSet := make(map[string]bool)
			for _, e := range result.Entries {
				if !e.IsWeekTotal() {
					dataRows++
					weekSet[e.WeekBeginning] = true
				}
			}
			fmt.Println()
			fmt.Printf("Generated %d entries across %d weeks\n", dataRows, len(weekSet))
			fmt.Println()
			fmt.Println("Review the table and then:")
			fmt.Println("  - Upload all weeks:     tally upload --all")
			fmt.Println("  - Upload latest week:   tally upload --latest")
			fmt.Println("  - Upload specific week: tally upload 2025-12-07")
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Disable AI detection (faster, keyword matching only)")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of weeks back to include (default: from config)")

	return cmd
}
