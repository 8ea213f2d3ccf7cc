package fetch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// readEntries reads the identifier list file. Each line is a PDB ID followed
// by an optional chain ID; fields beyond the second are ignored. Blank lines
// are skipped and no de-duplication is performed.
func readEntries(filename string) ([]Entry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open identifier list: %w", err)
	}
	defer file.Close()

	var entries []Entry

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		entry := Entry{ID: fields[0]}
		if len(fields) > 1 {
			entry.Chain = fields[1]
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read identifier list: %w", err)
	}

	return entries, nil
}
