package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/cli/formatter"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Show how to export the calendar from Outlook",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(formatter.Header("Step 1: export calendar from Outlook"))
			fmt.Println()
			fmt.Println("1. Open Outlook")
			fmt.Println("2. Press Alt+F11 to open the VBA editor")
			fmt.Println("3. Run the 'ExportCalendarWithExternalDomains' macro")
			fmt.Printf("4. Save the export to: %s\n", app.Settings.Paths.CalendarInput)
			fmt.Println()
			fmt.Println("Then run: tally preview")
			return nil
		},
	}
}
