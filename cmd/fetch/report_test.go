package fetch

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tkarvinen/pdbfetch/internal/testutil"
)

func TestSummarize(t *testing.T) {
	outcomes := []Outcome{
		{Entry: Entry{ID: "1ABC"}, Path: "/out/1ABC.pdb"},
		{Entry: Entry{ID: "2XYZ"}, Error: "PDB ID 2XYZ not found in the remote database"},
		{Entry: Entry{ID: "3DEF", Chain: "B"}, Path: "/out/3DEF_B.pdb"},
	}

	summary := summarize(outcomes)

	assert.Equal(t, 3, summary.Attempted)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "2XYZ", summary.Failures[0].ID)
	assert.Contains(t, summary.Failures[0].Reason, "not found")
}

func TestSummarizeEmpty(t *testing.T) {
	summary := summarize(nil)

	assert.Equal(t, 0, summary.Attempted)
	assert.Equal(t, 0, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Empty(t, summary.Failures)
}

func TestWriteFetchLog(t *testing.T) {
	env := testutil.NewTestEnv(t)

	outcomes := []Outcome{
		{Entry: Entry{ID: "1ABC"}, Path: env.Path("1ABC.pdb")},
		{Entry: Entry{ID: "1ABC", Chain: "B"}, Path: env.Path("1ABC_B.pdb")},
		{Entry: Entry{ID: "2XYZ"}, Error: "PDB ID 2XYZ not found in the remote database"},
	}

	require.NoError(t, writeFetchLog(outcomes, env.RootDir()))
	env.RequireFileExists("fetching.log")

	lines := strings.Split(strings.TrimSuffix(env.ReadFileString("fetching.log"), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1ABC 1ABC", lines[0])
	assert.Equal(t, "1ABC B 1ABC_B", lines[1])
	assert.Equal(t, "2XYZ PDB ID 2XYZ not found in the remote database", lines[2])
}

func TestWriteFetchLogMissingDirectory(t *testing.T) {
	env := testutil.NewTestEnv(t)

	err := writeFetchLog([]Outcome{{Entry: Entry{ID: "1ABC"}}}, env.Path("missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching.log")
}

func TestWriteReportYAML(t *testing.T) {
	env := testutil.NewTestEnv(t)

	summary := Summary{
		Attempted: 2,
		Succeeded: 1,
		Failed:    1,
		Failures: []Failure{
			{ID: "2XYZ", Reason: "PDB ID 2XYZ not found in the remote database"},
		},
	}

	path := env.Path("report.yaml")
	require.NoError(t, writeReportYAML(summary, path))

	var got Summary
	require.NoError(t, yaml.Unmarshal(env.ReadFile("report.yaml"), &got))
	assert.Equal(t, summary, got)
}

func TestOutcomeToMap(t *testing.T) {
	fetchedAt := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	outcome := Outcome{
		Entry: Entry{ID: "1ABC", Chain: "A"},
		Path:  "/out/1ABC_A.pdb",
	}

	row := outcomeToMap(outcome, fetchedAt)
	assert.Equal(t, "1ABC", row["pdb_id"])
	assert.Equal(t, "A", row["chain"])
	assert.Equal(t, "/out/1ABC_A.pdb", row["path"])
	assert.Equal(t, "", row["error"])
	assert.Equal(t, "2026-03-14T15:09:26Z", row["fetched_at"])
}

func TestWriteOutcomesToDatastoreDisabled(t *testing.T) {
	testutil.ResetConfig(t)

	// datasette.enabled defaults to unset, nothing should be written
	require.NoError(t, writeOutcomesToDatastore([]Outcome{{Entry: Entry{ID: "1ABC"}}}))
}

func TestWriteOutcomesToDatastoreRemote(t *testing.T) {
	testutil.ResetConfig(t)

	var gotPath, gotAuth string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = body
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	testutil.SetViperValue(t, "datasette.enabled", true)
	testutil.SetViperValue(t, "datasette.mode", "remote")
	testutil.SetViperValue(t, "datasette.remote_url", server.URL)
	testutil.SetViperValue(t, "datasette.api_token", "testtoken")

	outcomes := []Outcome{
		{Entry: Entry{ID: "1ABC"}, Path: "/out/1ABC.pdb"},
		{Entry: Entry{ID: "2XYZ"}, Error: "PDB ID 2XYZ not found in the remote database"},
	}
	require.NoError(t, writeOutcomesToDatastore(outcomes))

	assert.Equal(t, "/-/insert/pdbfetch/pdb_fetches", gotPath)
	assert.Equal(t, "Bearer testtoken", gotAuth)

	var payload map[string][]map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	require.Len(t, payload["rows"], 2)
	assert.Equal(t, "1ABC", payload["rows"][0]["pdb_id"])
	assert.Contains(t, payload["rows"][1]["error"], "not found")
}
