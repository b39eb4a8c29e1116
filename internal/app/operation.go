package app

import "time"

// Operation tracks a single CLI invocation. It starts out successful and is
// marked failed by the first operation error.
type Operation struct {
	Name      string
	StartedAt time.Time
	Status    string // "success" or "error"
	Err       error
}

// NewOperation creates an Operation that started at the given time.
func NewOperation(name string, startedAt time.Time) *Operation {
	return &Operation{
		Name:      name,
		StartedAt: startedAt,
		Status:    "success",
	}
}

// Fail records err and marks the operation as failed. Later calls keep the first error.
func (op *Operation) Fail(err error) {
	if err == nil || op.Err != nil {
		return
	}
	op.Status = "error"
	op.Err = err
}

// Failed reports whether the operation recorded an error.
func (op *Operation) Failed() bool {
	return op.Err != nil
}

// Duration returns the time elapsed between the start and now.
func (op *Operation) Duration(now time.Time) time.Duration {
	return now.Sub(op.StartedAt)
}

// ID formats the start time as a compact UTC identifier used in log lines.
func (op *Operation) ID() string {
	return op.StartedAt.UTC().Format("20060102T150405Z")
}
