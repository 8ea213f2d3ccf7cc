package fetch

import (
	"fmt"
	"net/http"

	"github.com/tkarvinen/pdbfetch/internal/errors"
	"github.com/tkarvinen/pdbfetch/internal/fileutil"
	"github.com/tkarvinen/pdbfetch/internal/pdb"
)

// runJob performs one complete fetch-and-write attempt. Every failure,
// including a panic, is converted into the returned Outcome; nothing escapes
// the worker boundary.
func runJob(client *http.Client, entry Entry, directory string, overwrite bool) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = failure(entry, fmt.Errorf("panic in fetch worker: %v", r))
		}
	}()
	return fetchWrite(client, entry, directory, overwrite)
}

// fetchWrite retrieves one structure, applies the optional chain selection,
// and writes the result to its deterministic path in directory. On failure no
// file is created.
func fetchWrite(client *http.Client, entry Entry, directory string, overwrite bool) Outcome {
	data, err := fetchStructure(client, entry.ID)
	if err != nil {
		return failure(entry, err)
	}

	if entry.Chain != "" {
		if !pdb.HasChain(data, entry.Chain) {
			return failure(entry, errors.NewChainNotFoundError(entry.ID, entry.Chain))
		}
		data = pdb.FilterChain(data, entry.Chain)
	}

	if atoms := pdb.CountAtoms(data); atoms > pdb.MaxFormatAtoms {
		return failure(entry, errors.NewTooLargeError(entry.Name(), atoms))
	}

	path := fileutil.GetStructureFilePath(entry.Name(), directory)
	if _, err := fileutil.WriteFileWithOverwrite(path, data, 0644, overwrite); err != nil {
		return failure(entry, fmt.Errorf("failed to write %s: %w", path, err))
	}

	return Outcome{Entry: entry, Path: path}
}

func failure(entry Entry, err error) Outcome {
	return Outcome{Entry: entry, Error: err.Error()}
}
