package sync

// Report summarizes one reconciliation pass. Individual mutation
// failures are collected here instead of aborting the pass; the entity
// stays in its pre-sync state until the next pass retries it.
type Report struct {
	Created int
	Updated int
	Deleted int
	Errors  []EntityError
}

// EntityError records a failed mutation for a single entity
type EntityError struct {
	Kind string
	ID   string
	Err  error
}

func (r *Report) fail(kind, id string, err error) {
	r.Errors = append(r.Errors, EntityError{Kind: kind, ID: id, Err: err})
}

// Failed reports whether any mutation in the pass failed
func (r *Report) Failed() bool {
	return len(r.Errors) > 0
}

// Empty reports whether the pass changed nothing
func (r *Report) Empty() bool {
	return r.Created == 0 && r.Updated == 0 && r.Deleted == 0 && len(r.Errors) == 0
}
