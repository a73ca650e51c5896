package tangle

// Write describes one directive that was (or, in a dry run, would be) written
type Write struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Info   string `json:"info,omitempty" yaml:"info,omitempty"`
	Bytes  int    `json:"bytes" yaml:"bytes"`
}

// Report lists what a run visited and wrote, in execution order
type Report struct {
	Documents []string `json:"documents" yaml:"documents"`
	Writes    []Write  `json:"writes" yaml:"writes"`
	DryRun    bool     `json:"dry_run" yaml:"dry_run"`
}

// Targets returns the distinct write targets in first-write order
func (r *Report) Targets() []string {
	seen := make(map[string]bool, len(r.Writes))
	var out []string
	for _, w := range r.Writes {
		if seen[w.Target] {
			continue
		}
		seen[w.Target] = true
		out = append(out, w.Target)
	}
	return out
}
