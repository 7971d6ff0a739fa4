// Package results accumulates named test-style outcomes produced by the
// analysis stages. Records are append-only; the external report writer
// serializes them.
package results

import (
	"fmt"
	"strings"
	"sync"
)

// Status is the verdict attached to an outcome.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusWarning Status = "warning"
)

// Outcome is one immutable named result with a human-readable message.
type Outcome struct {
	Name    string
	Status  Status
	Message string
}

// Line serializes the outcome to one tab-delimited text line.
func (o Outcome) Line() string {
	return strings.Join([]string{o.Name, string(o.Status), o.Message}, "\t")
}

// Summary counts distinct outcome names and how many of them passed.
type Summary struct {
	Total  int
	Passed int
}

// String renders the summary in "passed/total" form.
func (s Summary) String() string {
	return fmt.Sprintf("%d/%d checks passed", s.Passed, s.Total)
}

// Recorder collects outcomes from every pipeline stage.
type Recorder struct {
	mu       sync.Mutex
	outcomes []Outcome
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends an outcome.
func (r *Recorder) Record(name string, status Status, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, Outcome{Name: name, Status: status, Message: message})
}

// Passf records a passed outcome with a formatted message.
func (r *Recorder) Passf(name, format string, args ...any) {
	r.Record(name, StatusPassed, fmt.Sprintf(format, args...))
}

// Failf records a failed outcome with a formatted message.
func (r *Recorder) Failf(name, format string, args ...any) {
	r.Record(name, StatusFailed, fmt.Sprintf(format, args...))
}

// Warnf records a warning outcome with a formatted message.
func (r *Recorder) Warnf(name, format string, args ...any) {
	r.Record(name, StatusWarning, fmt.Sprintf(format, args...))
}

// Outcomes returns a copy of all recorded outcomes in order.
func (r *Recorder) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// Passed reports whether any outcome with the given name passed.
func (r *Recorder) Passed(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.outcomes {
		if o.Name == name && o.Status == StatusPassed {
			return true
		}
	}
	return false
}

// Summarize counts distinct outcome names; a name counts as passed when any
// of its records passed.
func (r *Recorder) Summarize() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	passed := make(map[string]bool)
	for _, o := range r.outcomes {
		seen[o.Name] = true
		if o.Status == StatusPassed {
			passed[o.Name] = true
		}
	}
	return Summary{Total: len(seen), Passed: len(passed)}
}
