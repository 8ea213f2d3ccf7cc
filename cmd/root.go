package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/tkarvinen/pdbfetch/cmd/fetch"
	"github.com/tkarvinen/pdbfetch/internal/config"
)

var runFetch = fetch.FetchWithParams

// CLI represents the complete command structure for the pdbfetch application
type CLI struct {
	// Global flags
	Overwrite bool `help:"Overwrite existing structure files" default:"true" negatable:""`

	// Datasette flags
	Datasette   bool   `help:"Record batch outcomes into a Datasette-compatible SQLite database"`
	DatasetteDB string `help:"Path to SQLite database file" default:"./pdbfetch.db"`

	Fetch FetchCmd `cmd:"" default:"withargs" help:"Fetch PDB structures listed in a file"`
}

// FetchCmd represents the fetch command
type FetchCmd struct {
	PdbidListFile    string `short:"f" help:"Path to the newline-delimited list of PDB IDs; each line is 'PDBID [CHAINID]'"`
	OutFileDirectory string `short:"o" help:"Pre-existing directory to receive one .pdb file per identifier"`
	MaxThreads       int    `short:"c" help:"Number of concurrent fetch workers" default:"4"`
	JSON             bool   `help:"Write outcomes to JSON format"`
	JSONOutput       string `help:"Path to JSON output file (defaults to json/fetch.json)"`
	ReportFile       string `help:"Write the batch summary as YAML to this path"`
	Progress         bool   `help:"Render a progress bar while the batch runs"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("pdbfetch"),
		kong.Description("A tool to fetch PDB structures from RCSB and save them to file."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("OverwriteFiles", true)
	viper.SetDefault("rcsb.base_url", fetch.DefaultBaseURL)
	viper.SetDefault("rcsb.timeout", config.DefaultFetchTimeout.String())

	// Datasette defaults; mode "remote" posts to remote_url instead of
	// writing the local dbfile
	viper.SetDefault("datasette.enabled", false)
	viper.SetDefault("datasette.mode", "local")
	viper.SetDefault("datasette.dbfile", "./pdbfetch.db")
	viper.SetDefault("datasette.remote_url", "")

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("rcsb.base_url", "RCSB_BASE_URL"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}
	if err := viper.BindEnv("datasette.api_token", "DATASETTE_API_TOKEN"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Defaults cover everything; a config file is optional.
			slog.Debug("Config file not found, using defaults")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	// Update config based on CLI flags
	config.SetOverwriteFiles(cli.Overwrite)
	viper.Set("OverwriteFiles", cli.Overwrite)

	// Update datasette config
	viper.Set("datasette.enabled", cli.Datasette)
	viper.Set("datasette.dbfile", cli.DatasetteDB)
}

// Run methods for each command

func (f *FetchCmd) Run() error {
	// Read from config if value not provided via flag
	listFile := f.PdbidListFile
	if listFile == "" {
		listFile = viper.GetString("fetch.listfile")
	}

	return runFetch(fetch.Options{
		ListFile:   listFile,
		OutputDir:  f.OutFileDirectory,
		// An explicit -c 0 is rejected by validation, not silently defaulted
		MaxThreads: f.MaxThreads,
		Overwrite:  config.OverwriteFiles,
		JSON:       f.JSON,
		JSONOutput: f.JSONOutput,
		ReportFile: f.ReportFile,
		Progress:   f.Progress,
	})
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
