package cli

import (
	"github.com/spf13/cobra"

	"tally/internal/config"
	"tally/internal/domain"
	"tally/internal/pipeline"
	"tally/internal/store"
	"tally/internal/upload"
)

// App holds the collaborators CLI commands run against. NewPipeline is a
// factory rather than a fixed instance because the preview command decides
// per run whether the AI detection pass is on.
type App struct {
	Settings    *config.Settings
	Exclusions  map[string]bool
	Codes       []domain.ProjectCode
	Store       *store.EntryStore
	Uploader    *upload.Service
	NewPipeline func(useAI bool) *pipeline.Pipeline
}

// NewRootCmd creates the top-level "tally" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Turn calendar exports into weekly timesheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newExportCmd(app),
		newPreviewCmd(app),
		newStatusCmd(app),
		newReportCmd(app),
		newUploadCmd(app),
	)

	return root
}
