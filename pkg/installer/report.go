package installer

// Report is the ordered, append-only sequence of per-artifact outcomes for one
// run. It is built by Run and consumed by the install command's summary; it is
// never persisted.
type Report struct {
	Outcomes []Outcome
}

// BranchOutcomes groups a branch's outcomes for rendering, preserving
// manifest order.
type BranchOutcomes struct {
	Branch   string
	Outcomes []Outcome
}

// ByBranch returns outcomes grouped by branch in first-seen order.
func (r *Report) ByBranch() []BranchOutcomes {
	var groups []BranchOutcomes
	index := make(map[string]int)

	for _, out := range r.Outcomes {
		i, ok := index[out.Branch]
		if !ok {
			i = len(groups)
			index[out.Branch] = i
			groups = append(groups, BranchOutcomes{Branch: out.Branch})
		}
		groups[i].Outcomes = append(groups[i].Outcomes, out)
	}
	return groups
}

// Counts returns the number of artifacts installed cleanly, installed with
// warnings, and skipped.
func (r *Report) Counts() (installed, warned, skipped int) {
	for _, out := range r.Outcomes {
		switch out.Status {
		case StatusInstalled:
			installed++
		case StatusInstalledWithWarnings:
			warned++
		case StatusSkipped:
			skipped++
		}
	}
	return installed, warned, skipped
}

// ExitCode implements the run's exit policy: 0 if at least one artifact was
// installed, with or without warnings; non-zero otherwise.
func (r *Report) ExitCode() int {
	installed, warned, _ := r.Counts()
	if installed+warned > 0 {
		return 0
	}
	return 1
}
