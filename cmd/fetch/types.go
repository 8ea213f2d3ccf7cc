package fetch

// Entry is one line of the identifier list: a PDB ID and an optional chain.
type Entry struct {
	ID    string `json:"ID"`
	Chain string `json:"Chain,omitempty"`
}

// Name returns the output file stem for the entry, "1ABC" or "1ABC_A".
func (e Entry) Name() string {
	if e.Chain != "" {
		return e.ID + "_" + e.Chain
	}
	return e.ID
}

// Outcome is the result of one fetch-and-write attempt. Exactly one of Path
// and Error is set.
type Outcome struct {
	Entry Entry  `json:"Entry"`
	Path  string `json:"Path,omitempty"`
	Error string `json:"Error,omitempty"`
}

// Success reports whether the attempt produced a structure file.
func (o Outcome) Success() bool {
	return o.Error == ""
}

// Summary aggregates the outcomes of one batch run.
type Summary struct {
	Attempted int       `yaml:"attempted" json:"Attempted"`
	Succeeded int       `yaml:"succeeded" json:"Succeeded"`
	Failed    int       `yaml:"failed" json:"Failed"`
	Failures  []Failure `yaml:"failures,omitempty" json:"Failures,omitempty"`
}

// Failure names one failed identifier and the reason.
type Failure struct {
	ID     string `yaml:"id" json:"ID"`
	Chain  string `yaml:"chain,omitempty" json:"Chain,omitempty"`
	Reason string `yaml:"reason" json:"Reason"`
}
