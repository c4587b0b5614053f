package main

import (
	"fmt"
	"os"

	"tally/internal/cli"
	"tally/internal/config"
	"tally/internal/detect"
	"tally/internal/llm"
	"tally/internal/pipeline"
	"tally/internal/registry"
	"tally/internal/store"
	"tally/internal/upload"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir := config.Dir()

	settings, err := config.LoadSettings(dir)
	if err != nil {
		return err
	}
	mapping, err := config.LoadCategoryMapping(dir)
	if err != nil {
		return err
	}
	exclusions, err := config.LoadExclusions(dir)
	if err != nil {
		return err
	}

	codes, err := registry.Load(settings.Paths.ProjectCodes)
	if err != nil {
		return err
	}
	companies := registry.Companies(codes)

	database, err := store.Open(settings.Paths.PreviewDB)
	if err != nil {
		return err
	}
	defer database.Close()
	entryStore := store.NewEntryStore(database)

	// AI config: settings.yaml provides model/endpoint, the environment
	// provides the key and can override everything else.
	aiCfg := llm.LoadConfig()
	if settings.AI.Model != "" {
		aiCfg.Model = settings.AI.Model
	}
	if settings.AI.Endpoint != "" {
		aiCfg.Endpoint = settings.AI.Endpoint
	}

	var observer llm.Observer = llm.NoopObserver{}
	if aiCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewGeminiClient(aiCfg, observer)

	newPipeline := func(useAI bool) *pipeline.Pipeline {
		return &pipeline.Pipeline{
			Mapping:     mapping,
			Codes:       codes,
			Detector:    detect.NewDetector(client, companies, useAI),
			Commenter:   detect.NewCommenter(client, useAI),
			TargetHours: settings.Report.TargetHours,
		}
	}

	poster := upload.NewGraphPoster(upload.LoadGraphConfig(settings.Upload.SiteID, settings.Upload.ListID))

	app := &cli.App{
		Settings:    settings,
		Exclusions:  exclusions,
		Codes:       codes,
		Store:       entryStore,
		Uploader:    upload.NewService(entryStore, poster),
		NewPipeline: newPipeline,
	}

	return cli.NewRootCmd(app).Execute()
}
