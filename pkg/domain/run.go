package domain

import "time"

// Run is an archived, finished evaluation.
type Run struct {
	ID         string    `json:"id"`
	Document   string    `json:"document,omitempty"`
	Seed       uint64    `json:"seed,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Results    *Results  `json:"results"`
}

// NewRun creates a run record for the given document label.
func NewRun(id, document string) *Run {
	return &Run{
		ID:        id,
		Document:  document,
		StartedAt: time.Now().UTC(),
		Results:   NewResults(),
	}
}

// Clone returns a copy that shares nothing mutable with r.
func (r *Run) Clone() *Run {
	out := *r
	if r.Results != nil {
		out.Results = r.Results.Clone()
	}
	return &out
}
