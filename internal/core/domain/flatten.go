package domain

// FileOutcome records what happened to a single source file during flattening.
type FileOutcome struct {
	Path      string
	Succeeded bool
	Err       error
}

// FlattenResult summarizes a flatten run.
// FlattenedFiles never exceeds TotalFiles.
type FlattenResult struct {
	TotalFiles     uint
	FlattenedFiles uint
	Outcomes       []FileOutcome
}

// Complete reports whether every file was flattened.
func (r FlattenResult) Complete() bool {
	return r.FlattenedFiles == r.TotalFiles
}

// Failed returns the outcomes that did not succeed, in walk order.
func (r FlattenResult) Failed() []FileOutcome {
	var failed []FileOutcome
	for _, o := range r.Outcomes {
		if !o.Succeeded {
			failed = append(failed, o)
		}
	}
	return failed
}

// BackupResult describes the outcome of an artifact backup.
type BackupResult struct {
	// Performed is false when there was no artifact to back up.
	Performed bool
	Bytes     int64
	Checksum  uint64
}
