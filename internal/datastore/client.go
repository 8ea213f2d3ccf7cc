package datastore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"
)

const insertTimeout = 30 * time.Second

// DatasetteClient records fetch outcomes in a remote Datasette instance
// through its JSON write API.
type DatasetteClient struct {
	baseURL  string
	apiToken string
	client   *http.Client
}

// NewDatasetteClient creates a client for the Datasette instance at baseURL.
// The token is sent as a bearer credential on every insert.
func NewDatasetteClient(baseURL, apiToken string) *DatasetteClient {
	return &DatasetteClient{
		baseURL:  baseURL,
		apiToken: apiToken,
		client:   &http.Client{Timeout: insertTimeout},
	}
}

// Connect validates the configured base URL. No request is made; Datasette
// has no handshake.
func (c *DatasetteClient) Connect() error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid datasette URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("datasette URL must be absolute: %q", c.baseURL)
	}
	return nil
}

// CreateTable is a no-op: the Datasette insert API creates the table from the
// first batch of rows.
func (c *DatasetteClient) CreateTable(schema string) error {
	return nil
}

// BatchInsert posts the outcome rows to /-/insert/<database>/<table>.
func (c *DatasetteClient) BatchInsert(database string, table string, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid datasette URL: %w", err)
	}
	u.Path = path.Join(u.Path, "-/insert", database, table)

	body, err := json.Marshal(map[string]any{"rows": records})
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create insert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send insert request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var apiErr map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return fmt.Errorf("datasette insert failed with status %d", resp.StatusCode)
		}
		return fmt.Errorf("datasette insert rejected: %v", apiErr)
	}

	return nil
}

// Close is a no-op for the HTTP client.
func (c *DatasetteClient) Close() error {
	return nil
}
