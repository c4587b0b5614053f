package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tally/internal/cli/formatter"
	"tally/internal/upload"
)

func newUploadCmd(app *App) *cobra.Command {
	var latest, all, yes bool

	cmd := &cobra.Command{
		Use:   "upload [WEEK]",
		Short: "Upload stored entries to the timesheet list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var target string
			switch {
			case all:
				target = "all weeks"
			case latest:
				week, err := app.Uploader.LatestWeek(ctx)
				if err != nil {
					return err
				}
				target = week
			case len(args) == 1:
				target = args[0]
			default:
				return fmt.Errorf("specify --all, --latest, or a week date (YYYY-MM-DD)")
			}

			if !yes && !confirmUpload(target) {
				fmt.Println("Upload cancelled")
				return nil
			}

			if all {
				results, err := app.Uploader.UploadAll(ctx)
				for _, r := range results {
					fmt.Print(formatter.FormatWeekResult(r))
					fmt.Println()
				}
				if err != nil {
					return err
				}
				return failOnErrors(results)
			}

			result, err := app.Uploader.UploadWeek(ctx, target)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatWeekResult(result))
			return failOnErrors([]*upload.WeekResult{result})
		},
	}

	cmd.Flags().BoolVar(&latest, "latest", false, "Upload the most recent stored week")
	cmd.Flags().BoolVar(&all, "all", false, "Upload every stored week")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// confirmUpload asks before posting anything. Non-interactive runs (piped
// output, CI) proceed without a prompt.
func confirmUpload(target string) bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return true
	}

	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Upload %s to the timesheet list?", target)).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return false
	}
	return confirmed
}

func failOnErrors(results []*upload.WeekResult) error {
	failed := 0
	for _, r := range results {
		failed += r.Failed
	}
	if failed > 0 {
		return fmt.Errorf("%d entries failed to upload", failed)
	}
	return nil
}
