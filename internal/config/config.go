package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing structure files should be overwritten
	OverwriteFiles bool
	// FetchTimeout is the per-request timeout applied to RCSB downloads
	FetchTimeout time.Duration
)

// DefaultFetchTimeout is used when no rcsb.timeout value is configured.
const DefaultFetchTimeout = 60 * time.Second

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("OverwriteFiles", true)
	viper.SetDefault("rcsb.timeout", DefaultFetchTimeout.String())

	// Get values from viper
	OverwriteFiles = viper.GetBool("OverwriteFiles")
	FetchTimeout = viper.GetDuration("rcsb.timeout")
	if FetchTimeout <= 0 {
		FetchTimeout = DefaultFetchTimeout
	}
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}
