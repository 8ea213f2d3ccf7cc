package fetch

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/viper"

	"github.com/tkarvinen/pdbfetch/internal/errors"
)

// DefaultBaseURL is the RCSB download endpoint serving legacy-format files.
const DefaultBaseURL = "https://files.rcsb.org/download/"

const userAgent = "pdbfetch/1.0"

// fetchStructure retrieves the raw .pdb file for one identifier from RCSB.
// A 404 maps to a NotFoundError; there is no retry.
func fetchStructure(client *http.Client, pdbID string) ([]byte, error) {
	baseURL := viper.GetString("rcsb.base_url")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	url := baseURL + pdbID + ".pdb"

	slog.Debug("Fetching structure", "id", pdbID, "url", url)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch structure: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NewNotFoundError(pdbID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("RCSB returned non-200 status code: %d for id: %s", resp.StatusCode, pdbID)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response from RCSB for id: %s", pdbID)
	}

	return data, nil
}
