package pdb

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

const sampleStructure = `HEADER    HYDROLASE                               01-JAN-00   1ABC
REMARK   2 RESOLUTION.    1.50 ANGSTROMS.
ATOM      1  N   MET A   1      11.104   6.134  -6.504  1.00  0.00           N
ATOM      2  CA  MET A   1      11.639   6.071  -5.147  1.00  0.00           C
TER       3      MET A   1
ATOM      4  N   GLY B   1      12.871   7.125  -3.007  1.00  0.00           N
ATOM      5  CA  GLY B   1      13.102   7.899  -1.788  1.00  0.00           C
HETATM    6  O   HOH B 101      14.010   9.001   0.123  1.00  0.00           O
TER       7      GLY B   1
END
`

func TestChains(t *testing.T) {
	chains := Chains([]byte(sampleStructure))
	assert.Equal(t, []string{"A", "B"}, chains)
}

func TestChainsEmptyStructure(t *testing.T) {
	assert.Equal(t, 0, len(Chains(nil)))
	assert.Equal(t, 0, len(Chains([]byte("HEADER    EMPTY\nEND\n"))))
}

func TestHasChain(t *testing.T) {
	data := []byte(sampleStructure)

	tests := []struct {
		name  string
		chain string
		want  bool
	}{
		{"present chain", "A", true},
		{"other present chain", "B", true},
		{"absent chain", "C", false},
		{"empty chain", "", false},
		{"multi-character chain never matches", "AB", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasChain(data, tt.chain))
		})
	}
}

func TestCountAtoms(t *testing.T) {
	// 5 ATOM records plus one HETATM
	assert.Equal(t, 6, CountAtoms([]byte(sampleStructure)))
	assert.Equal(t, 0, CountAtoms(nil))
}

func TestFilterChain(t *testing.T) {
	filtered := string(FilterChain([]byte(sampleStructure), "B"))

	assert.True(t, strings.Contains(filtered, "GLY B"))
	assert.True(t, strings.Contains(filtered, "HETATM"))
	assert.True(t, strings.HasSuffix(filtered, "END\n"))
	assert.False(t, strings.Contains(filtered, "MET A"))
	assert.False(t, strings.Contains(filtered, "HEADER"))

	// Filtering keeps the chain's TER record
	assert.True(t, strings.Contains(filtered, "TER       7"))

	// The filtered copy parses as a single-chain structure
	assert.Equal(t, []string{"B"}, Chains([]byte(filtered)))
	assert.Equal(t, 3, CountAtoms([]byte(filtered)))
}

func TestFilterChainShortLines(t *testing.T) {
	// Truncated records must not panic; they carry no chain and are dropped.
	data := []byte("ATOM\nTER\nEND\n")
	filtered := string(FilterChain(data, "A"))
	assert.Equal(t, "END\n", filtered)
}
