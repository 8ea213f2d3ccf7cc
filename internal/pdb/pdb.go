// Package pdb handles the fixed-column PDB coordinate format: enumerating
// chains, counting atoms and filtering a structure down to a single chain.
package pdb

import (
	"bufio"
	"bytes"
	"strings"
)

// MaxFormatAtoms is the largest atom count representable in the fixed-width
// serial number column of a .pdb file.
const MaxFormatAtoms = 99999

// The record name occupies columns 1-6; the chain identifier of coordinate
// and TER records is the single character in column 22.
const chainColumn = 21

func recordName(line string) string {
	if len(line) < 6 {
		return strings.TrimSpace(line)
	}
	return strings.TrimSpace(line[0:6])
}

func isCoordinate(name string) bool {
	return name == "ATOM" || name == "HETATM"
}

func chainOf(line string) string {
	if len(line) <= chainColumn {
		return ""
	}
	return strings.TrimSpace(line[chainColumn : chainColumn+1])
}

// Chains returns the distinct chain identifiers of all coordinate records,
// in order of first appearance.
func Chains(data []byte) []string {
	var chains []string
	seen := make(map[string]bool)

	forEachLine(data, func(line string) {
		if !isCoordinate(recordName(line)) {
			return
		}
		chain := chainOf(line)
		if chain == "" || seen[chain] {
			return
		}
		seen[chain] = true
		chains = append(chains, chain)
	})

	return chains
}

// HasChain reports whether any coordinate record belongs to the given chain.
// Chain identifiers longer than one character can never match, since the
// format only stores a single character.
func HasChain(data []byte, chain string) bool {
	if len(chain) != 1 {
		return false
	}
	for _, c := range Chains(data) {
		if c == chain {
			return true
		}
	}
	return false
}

// CountAtoms returns the number of ATOM and HETATM records.
func CountAtoms(data []byte) int {
	count := 0
	forEachLine(data, func(line string) {
		if isCoordinate(recordName(line)) {
			count++
		}
	})
	return count
}

// FilterChain returns a copy of the structure containing only the coordinate
// and TER records of the given chain, terminated by an END record. Header
// records are dropped, matching the minimal output of a selection write.
func FilterChain(data []byte, chain string) []byte {
	var buf bytes.Buffer

	forEachLine(data, func(line string) {
		name := recordName(line)
		if !isCoordinate(name) && name != "TER" {
			return
		}
		if chainOf(line) != chain {
			return
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	})

	buf.WriteString("END\n")
	return buf.Bytes()
}

func forEachLine(data []byte, fn func(line string)) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	// Coordinate lines are 80 columns; the default buffer is plenty.
	for scanner.Scan() {
		fn(scanner.Text())
	}
}
