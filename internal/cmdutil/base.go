package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// BaseCommandConfig holds common configuration for fetch commands
type BaseCommandConfig struct {
	OutputDir  string
	ConfigKey  string
	JSONOutput string
	WriteJSON  bool
	Overwrite  bool
}

// SetupOutputDir resolves and validates the output directory. The directory
// must already exist: structure files are only ever written into a directory
// the caller prepared, and a missing or unwritable directory is a fatal
// error raised before any worker starts.
func SetupOutputDir(cfg *BaseCommandConfig) error {
	// If flag wasn't provided, try to get value from config
	outputDir := cfg.OutputDir
	if outputDir == "" && cfg.ConfigKey != "" {
		outputDir = viper.GetString(cfg.ConfigKey + ".output")
	}
	if outputDir == "" {
		return fmt.Errorf("output directory is required (provide via --out-file-directory flag or %s.output in config)", cfg.ConfigKey)
	}
	cfg.OutputDir = filepath.Clean(outputDir)

	info, err := os.Stat(cfg.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", cfg.OutputDir)
		}
		return fmt.Errorf("failed to stat output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", cfg.OutputDir)
	}
	if err := checkWritable(cfg.OutputDir); err != nil {
		return fmt.Errorf("output directory is not writable: %w", err)
	}

	// If JSON output is enabled but no path specified, use default in json directory
	if cfg.WriteJSON && cfg.JSONOutput == "" {
		jsonBaseDir := viper.GetString("jsonoutputdir")
		if jsonBaseDir == "" {
			jsonBaseDir = "json"
		}
		jsonFile := cfg.ConfigKey + ".json"
		cfg.JSONOutput = filepath.Clean(filepath.Join(jsonBaseDir, jsonFile))
	}

	return nil
}

// checkWritable probes the directory with a throwaway file.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".pdbfetch-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Remove(name)
}
