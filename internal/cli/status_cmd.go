package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/cli/formatter"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stored weeks and their upload status",
		RunE: func(cmd *cobra.Command, args []string) error {
			weeks, err := app.Store.Weeks(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatWeekSummaries(weeks, app.Settings.Report.TargetHours))
			return nil
		},
	}
}
