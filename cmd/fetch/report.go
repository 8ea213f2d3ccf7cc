package fetch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tkarvinen/pdbfetch/internal/datastore"
	"github.com/tkarvinen/pdbfetch/internal/fileutil"
)

// fetchLogName is the per-batch log written into the output directory,
// one line per identifier.
const fetchLogName = "fetching.log"

// summarize aggregates outcomes into a batch summary.
func summarize(outcomes []Outcome) Summary {
	summary := Summary{Attempted: len(outcomes)}
	for _, outcome := range outcomes {
		if outcome.Success() {
			summary.Succeeded++
			continue
		}
		summary.Failed++
		summary.Failures = append(summary.Failures, Failure{
			ID:     outcome.Entry.ID,
			Chain:  outcome.Entry.Chain,
			Reason: outcome.Error,
		})
	}
	return summary
}

// logSummary reports the batch result through the default logger.
func logSummary(summary Summary) {
	slog.Info("Batch complete",
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed)
	for _, failure := range summary.Failures {
		slog.Warn("Fetch failed", "id", failure.ID, "chain", failure.Chain, "reason", failure.Reason)
	}
}

// writeFetchLog writes one line per outcome into fetching.log in the output
// directory: the identifier, the optional chain, then either the written
// file's stem or the error text.
func writeFetchLog(outcomes []Outcome, directory string) error {
	var sb strings.Builder
	for _, outcome := range outcomes {
		sb.WriteString(outcome.Entry.ID)
		if outcome.Entry.Chain != "" {
			sb.WriteString(" " + outcome.Entry.Chain)
		}
		if outcome.Success() {
			stem := strings.TrimSuffix(filepath.Base(outcome.Path), ".pdb")
			sb.WriteString(" " + stem)
		} else {
			sb.WriteString(" " + outcome.Error)
		}
		sb.WriteString("\n")
	}

	logPath := filepath.Join(directory, fetchLogName)
	if err := os.WriteFile(logPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fetchLogName, err)
	}
	return nil
}

// writeReportYAML writes the batch summary as YAML.
func writeReportYAML(summary Summary, path string) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// writeOutcomesToJSON writes the full outcome list to a JSON file.
func writeOutcomesToJSON(outcomes []Outcome, filename string) error {
	_, err := fileutil.WriteJSONFile(outcomes, filename, overwrite)
	return err
}

// Convert an Outcome to map[string]any for database insertion
func outcomeToMap(outcome Outcome, fetchedAt time.Time) map[string]any {
	return map[string]any{
		"pdb_id":     outcome.Entry.ID,
		"chain":      outcome.Entry.Chain,
		"path":       outcome.Path,
		"error":      outcome.Error,
		"fetched_at": fetchedAt.UTC().Format(time.RFC3339),
	}
}

// writeOutcomesToDatastore records the batch outcomes when datasette output
// is enabled.
func writeOutcomesToDatastore(outcomes []Outcome) error {
	if !viper.GetBool("datasette.enabled") {
		return nil
	}

	slog.Info("Writing fetch outcomes to Datasette")
	mode := viper.GetString("datasette.mode")

	var store datastore.Store
	if mode == "remote" {
		store = datastore.NewDatasetteClient(
			viper.GetString("datasette.remote_url"),
			viper.GetString("datasette.api_token"),
		)
	} else {
		store = datastore.NewSQLiteStore(viper.GetString("datasette.dbfile"))
	}

	if err := store.Connect(); err != nil {
		slog.Error("Failed to connect to datastore", "error", err)
		return err
	}
	defer store.Close()

	schema := `CREATE TABLE IF NOT EXISTS pdb_fetches (
		pdb_id TEXT,
		chain TEXT,
		path TEXT,
		error TEXT,
		fetched_at TEXT
	)`
	if err := store.CreateTable(schema); err != nil {
		return err
	}

	now := time.Now()
	records := make([]map[string]any, 0, len(outcomes))
	for _, outcome := range outcomes {
		records = append(records, outcomeToMap(outcome, now))
	}

	return store.BatchInsert("pdbfetch", "pdb_fetches", records)
}
