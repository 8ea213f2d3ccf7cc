package fetch

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tkarvinen/pdbfetch/internal/cmdutil"
	"github.com/tkarvinen/pdbfetch/internal/config"
	"github.com/tkarvinen/pdbfetch/internal/tui"
)

// Define package-level variables for flags
var (
	listFile   string
	cmdConfig  *cmdutil.BaseCommandConfig
	outputDir  string
	maxThreads int
	// Global variables referenced by the batch runner
	writeJSON    bool
	jsonOutput   string
	reportFile   string
	overwrite    bool
	showProgress bool
)

var (
	fetchStructuresFunc = FetchStructures
	runProgress         = tui.RunProgress
)

// Options carries the parameters for one batch fetch run.
type Options struct {
	ListFile   string
	OutputDir  string
	MaxThreads int
	Overwrite  bool
	JSON       bool
	JSONOutput string
	ReportFile string
	Progress   bool
}

// FetchWithParams allows calling the batch fetch with specific parameters.
// This is used by the Kong-based CLI implementation.
func FetchWithParams(opts Options) error {
	// Set the global variables that FetchStructures expects
	listFile = opts.ListFile
	maxThreads = opts.MaxThreads
	reportFile = opts.ReportFile
	showProgress = opts.Progress

	if listFile == "" {
		return fmt.Errorf("identifier list file is required (provide via --pdbid-list-file flag or fetch.listfile in config)")
	}
	if maxThreads < 1 {
		return fmt.Errorf("max threads must be at least 1, got %d", maxThreads)
	}

	// Set up command config similar to PreRunE logic
	cmdConfig = &cmdutil.BaseCommandConfig{
		OutputDir:  opts.OutputDir,
		ConfigKey:  "fetch",
		WriteJSON:  opts.JSON,
		JSONOutput: opts.JSONOutput,
		Overwrite:  opts.Overwrite,
	}

	if err := cmdutil.SetupOutputDir(cmdConfig); err != nil {
		return err
	}

	// Update package-level global variables with processed paths
	outputDir = cmdConfig.OutputDir
	writeJSON = cmdConfig.WriteJSON
	jsonOutput = cmdConfig.JSONOutput
	overwrite = cmdConfig.Overwrite

	return fetchStructuresFunc()
}

// FetchStructures runs the batch fetch using the package-level configuration.
func FetchStructures() error {
	// Double check overwrite flag with global config
	if overwrite != config.OverwriteFiles {
		slog.Warn("Overwrite flag mismatch, using global value",
			"local", overwrite, "global", config.OverwriteFiles)
		overwrite = config.OverwriteFiles
	}

	entries, err := readEntries(listFile)
	if err != nil {
		return err
	}
	slog.Info("Starting batch fetch",
		"identifiers", len(entries), "workers", maxThreads, "overwrite", overwrite)

	client := &http.Client{Timeout: config.FetchTimeout}
	job := func(entry Entry) Outcome {
		return runJob(client, entry, outputDir, overwrite)
	}

	var outcomes []Outcome
	if showProgress {
		outcomes = runWithProgress(entries, maxThreads, job)
	} else {
		outcomes = dispatch(entries, maxThreads, job)
	}

	summary := summarize(outcomes)
	logSummary(summary)

	if err := writeFetchLog(outcomes, outputDir); err != nil {
		return err
	}
	if writeJSON {
		if err := writeOutcomesToJSON(outcomes, jsonOutput); err != nil {
			slog.Error("Error writing outcomes to JSON", "error", err)
			return err
		}
	}
	if reportFile != "" {
		if err := writeReportYAML(summary, reportFile); err != nil {
			slog.Error("Error writing YAML report", "error", err)
			return err
		}
	}
	if err := writeOutcomesToDatastore(outcomes); err != nil {
		slog.Error("Error writing outcomes to datastore", "error", err)
		return err
	}

	return nil
}

// runWithProgress runs the batch while a terminal progress bar tracks
// completions.
func runWithProgress(entries []Entry, workers int, job func(Entry) Outcome) []Outcome {
	events := make(chan tui.OutcomeMsg)

	var outcomes []Outcome
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(events)
		outcomes = dispatch(entries, workers, func(entry Entry) Outcome {
			outcome := job(entry)
			events <- tui.OutcomeMsg{Failed: !outcome.Success()}
			return outcome
		})
	}()

	if err := runProgress(len(entries), events); err != nil {
		slog.Warn("Progress display failed", "error", err)
	}
	<-done

	return outcomes
}
