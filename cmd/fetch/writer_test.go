package fetch

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarvinen/pdbfetch/internal/testutil"
)

const samplePDB = `HEADER    HYDROLASE                               01-JAN-00   1ABC
ATOM      1  N   MET A   1      11.104   6.134  -6.504  1.00  0.00           N
ATOM      2  CA  MET A   1      11.639   6.071  -5.147  1.00  0.00           C
TER       3      MET A   1
ATOM      4  N   GLY B   1      12.871   7.125  -3.007  1.00  0.00           N
TER       5      GLY B   1
END
`

func TestRunJobSuccess(t *testing.T) {
	testutil.SetTestConfig(t)
	env := testutil.NewTestEnv(t)
	env.MkdirAll("out")
	newFakeRCSB(t, map[string]string{"1ABC": samplePDB})

	outcome := runJob(http.DefaultClient, Entry{ID: "1ABC"}, env.Path("out"), true)

	require.True(t, outcome.Success(), "unexpected failure: %s", outcome.Error)
	assert.Equal(t, env.Path("out", "1ABC.pdb"), outcome.Path)
	env.RequireFileExists("out/1ABC.pdb")
	assert.Equal(t, samplePDB, env.ReadFileString("out/1ABC.pdb"))
}

func TestRunJobNotFoundLeavesNoFile(t *testing.T) {
	testutil.SetTestConfig(t)
	env := testutil.NewTestEnv(t)
	env.MkdirAll("out")
	newFakeRCSB(t, map[string]string{})

	outcome := runJob(http.DefaultClient, Entry{ID: "2XYZ"}, env.Path("out"), true)

	require.False(t, outcome.Success())
	assert.Contains(t, outcome.Error, "not found")
	env.RequireFileNotExists("out/2XYZ.pdb")
}

func TestRunJobChainSelection(t *testing.T) {
	testutil.SetTestConfig(t)
	env := testutil.NewTestEnv(t)
	env.MkdirAll("out")
	newFakeRCSB(t, map[string]string{"1ABC": samplePDB})

	outcome := runJob(http.DefaultClient, Entry{ID: "1ABC", Chain: "B"}, env.Path("out"), true)

	require.True(t, outcome.Success(), "unexpected failure: %s", outcome.Error)
	env.RequireFileExists("out/1ABC_B.pdb")

	content := env.ReadFileString("out/1ABC_B.pdb")
	assert.True(t, strings.Contains(content, "GLY B"))
	assert.False(t, strings.Contains(content, "MET A"))
}

func TestRunJobMissingChain(t *testing.T) {
	testutil.SetTestConfig(t)
	env := testutil.NewTestEnv(t)
	env.MkdirAll("out")
	newFakeRCSB(t, map[string]string{"1ABC": samplePDB})

	outcome := runJob(http.DefaultClient, Entry{ID: "1ABC", Chain: "Q"}, env.Path("out"), true)

	require.False(t, outcome.Success())
	assert.Contains(t, outcome.Error, "chain Q not found")
	env.RequireFileNotExists("out/1ABC_Q.pdb")
}

func TestRunJobAtomLimit(t *testing.T) {
	testutil.SetTestConfig(t)
	env := testutil.NewTestEnv(t)
	env.MkdirAll("out")

	// A structure exceeding the fixed-column serial limit
	var sb strings.Builder
	line := "ATOM      1  N   MET A   1      11.104   6.134  -6.504  1.00  0.00           N\n"
	for i := 0; i < 100000; i++ {
		sb.WriteString(line)
	}
	sb.WriteString("END\n")
	newFakeRCSB(t, map[string]string{"1BIG": sb.String()})

	outcome := runJob(http.DefaultClient, Entry{ID: "1BIG"}, env.Path("out"), true)

	require.False(t, outcome.Success())
	assert.Contains(t, outcome.Error, "too large")
	env.RequireFileNotExists("out/1BIG.pdb")
}

func TestRunJobRespectsOverwriteFlag(t *testing.T) {
	testutil.SetTestConfig(t)
	env := testutil.NewTestEnv(t)
	env.MkdirAll("out")
	env.WriteFileString("out/1ABC.pdb", "pre-existing content")
	newFakeRCSB(t, map[string]string{"1ABC": samplePDB})

	outcome := runJob(http.DefaultClient, Entry{ID: "1ABC"}, env.Path("out"), false)

	require.True(t, outcome.Success())
	assert.Equal(t, "pre-existing content", env.ReadFileString("out/1ABC.pdb"))

	outcome = runJob(http.DefaultClient, Entry{ID: "1ABC"}, env.Path("out"), true)
	require.True(t, outcome.Success())
	assert.Equal(t, samplePDB, env.ReadFileString("out/1ABC.pdb"))
}

func TestRunJobWriteFailure(t *testing.T) {
	testutil.SetTestConfig(t)
	env := testutil.NewTestEnv(t)
	newFakeRCSB(t, map[string]string{"1ABC": samplePDB})

	// Output directory vanished between validation and write
	outcome := runJob(http.DefaultClient, Entry{ID: "1ABC"}, env.Path("gone"), true)

	require.False(t, outcome.Success())
	assert.Contains(t, outcome.Error, "failed to write")
}
