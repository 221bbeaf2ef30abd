package models

import "fmt"

// MaxWarningSamples caps how many malformed rows are kept verbatim in the
// warning summary. The count is always exact; samples are illustrative.
const MaxWarningSamples = 10

// Warnings is the parse-warning summary for one statement: how many rows
// were excluded as malformed, with a bounded set of samples. Malformed rows
// are never fatal; they are excluded, counted, and surfaced here.
type Warnings struct {
	SkippedRows int      `json:"skipped_rows"`
	Samples     []string `json:"samples,omitempty"`
}

// Add records one malformed row.
func (w *Warnings) Add(rowText, reason string) {
	w.SkippedRows++
	if len(w.Samples) < MaxWarningSamples {
		w.Samples = append(w.Samples, fmt.Sprintf("%s: %s", reason, rowText))
	}
}

// Merge folds another warning summary into this one.
func (w *Warnings) Merge(other Warnings) {
	w.SkippedRows += other.SkippedRows
	for _, s := range other.Samples {
		if len(w.Samples) >= MaxWarningSamples {
			break
		}
		w.Samples = append(w.Samples, s)
	}
}

// Empty reports whether no rows were skipped.
func (w Warnings) Empty() bool {
	return w.SkippedRows == 0
}
